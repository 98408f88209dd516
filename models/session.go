package models

// SessionKind 会话类型
type SessionKind string

const (
	SessionAnonymous     SessionKind = "anonymous"     // 未登录，无持久化
	SessionDemo          SessionKind = "demo"          // 演示模式，仅本地存储
	SessionAuthenticated SessionKind = "authenticated" // 已登录，远程存储
)

// Session 会话值，仓库根据 Kind 选择后端
// 会话永远作为显式参数传递，不作为全局可变状态
type Session struct {
	Kind   SessionKind `json:"kind"`
	UserID string      `json:"userId,omitempty"`
}

func AnonymousSession() Session {
	return Session{Kind: SessionAnonymous}
}

func DemoSession() Session {
	return Session{Kind: SessionDemo}
}

func AuthenticatedSession(userID string) Session {
	return Session{Kind: SessionAuthenticated, UserID: userID}
}

// Key 仓库管理器使用的会话键
// 所有演示会话共享同一个本地存储槽，因此共用一个键
func (s Session) Key() string {
	switch s.Kind {
	case SessionDemo:
		return "demo"
	case SessionAuthenticated:
		return "user:" + s.UserID
	default:
		return ""
	}
}
