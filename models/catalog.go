package models

// CatalogItem 目录项（情绪、认知扭曲）
// 目录数据在进程启动时加载一次，运行期间不可变
type CatalogItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// MoodItem 心情目录项
type MoodItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// Moods 心情目录
var Moods = []MoodItem{
	{ID: MoodHappy, Title: "Feliz", Color: "#10b981"},
	{ID: MoodSad, Title: "Triste", Color: "#3b82f6"},
	{ID: MoodAnxious, Title: "Ansioso", Color: "#f59e0b"},
	{ID: MoodAngry, Title: "Enojado", Color: "#ef4444"},
	{ID: MoodNeutral, Title: "Neutro", Color: "#94a3b8"},
}

// Emotions 情绪目录
var Emotions = []CatalogItem{
	{ID: "alegria", Title: "Alegría", Description: "Sentimiento de placer, felicidad y bienestar.", Icon: "Sun"},
	{ID: "tristeza", Title: "Tristeza", Description: "Pesar o melancolía por una pérdida o desilusión.", Icon: "CloudRain"},
	{ID: "ansiedad", Title: "Ansiedad", Description: "Preocupación excesiva, nerviosismo o inquietud.", Icon: "Wind"},
	{ID: "ira", Title: "Ira / Enojo", Description: "Sentimiento de indignación o rabia.", Icon: "Flame"},
	{ID: "miedo", Title: "Miedo", Description: "Sensación de peligro o inseguridad ante una amenaza.", Icon: "Ghost"},
	{ID: "culpa", Title: "Culpa", Description: "Remordimiento por creer haber hecho algo malo.", Icon: "ShieldAlert"},
	{ID: "frustracion", Title: "Frustración", Description: "Impotencia al no lograr un objetivo deseado.", Icon: "XCircle"},
	{ID: "esperanza", Title: "Esperanza", Description: "Confianza en que algo positivo sucederá.", Icon: "Stars"},
	{ID: "soledad", Title: "Soledad", Description: "Sentimiento de aislamiento o falta de conexión.", Icon: "UserMinus"},
	{ID: "calma", Title: "Calma", Description: "Paz interior y ausencia de agitación.", Icon: "Anchor"},
	{ID: "verguenza", Title: "Vergüenza", Description: "Malestar al sentir que has fallado en algo ante otros.", Icon: "EyeOff"},
	{ID: "gratitud", Title: "Gratitud", Description: "Aprecio por lo que tienes o recibes.", Icon: "HeartHandshake"},
	{ID: "agobio", Title: "Agobio", Description: "Sentir que las demandas superan tus recursos.", Icon: "Layers"},
	{ID: "entusiasmo", Title: "Entusiasmo", Description: "Gran interés y alegría por algo que va a suceder.", Icon: "Rocket"},
	{ID: "inseguridad", Title: "Inseguridad", Description: "Duda sobre tus propias capacidades o valores.", Icon: "Lock"},
	{ID: "curiosidad", Title: "Curiosidad", Description: "Deseo de aprender o conocer algo nuevo.", Icon: "Search"},
	{ID: "aceptacion", Title: "Aceptación", Description: "Reconocimiento de la realidad tal como es.", Icon: "CircleCheck"},
	{ID: "envidia", Title: "Envidia", Description: "Deseo de tener algo que otra persona posee.", Icon: "Eye"},
	{ID: "aburrimiento", Title: "Aburrimiento", Description: "Falta de interés por el entorno o las tareas.", Icon: "Coffee"},
	{ID: "orgullo", Title: "Orgullo", Description: "Satisfacción personal por tus propios logros.", Icon: "Trophy"},
}

// Distortions 认知扭曲目录
var Distortions = []CatalogItem{
	{ID: "tode-todo-nada", Title: "Pensamiento Todo o Nada", Description: "Ves las cosas en categorías de blanco o negro.", Icon: "Split"},
	{ID: "generalizacion", Title: "Generalización Excesiva", Description: "Ves un solo evento negativo como un patrón sin fin.", Icon: "Globe"},
	{ID: "filtro-mental", Title: "Filtro Mental", Description: "Te obsesionas con un detalle negativo y nublas todo lo demás.", Icon: "Filter"},
	{ID: "descalificar-positivo", Title: "Descalificar lo Positivo", Description: "Rechazas experiencias positivas insistiendo que no cuentan.", Icon: "MinusCircle"},
	{ID: "conclusiones-apresuradas", Title: "Conclusiones Apresuradas", Description: "Interpretas las cosas negativamente sin hechos que lo apoyen.", Icon: "Zap"},
	{ID: "magnificacion", Title: "Magnificación / Minimización", Description: "Exageras tus errores o reduces la importancia de tus logros.", Icon: "ChevronsUp"},
	{ID: "razonamiento-emocional", Title: "Razonamiento Emocional", Description: "Asumes que tus emociones negativas reflejan la realidad.", Icon: "HeartPulse"},
	{ID: "los-deberia", Title: "Los \"Debería\"", Description: "Te motivas con \"debería\" o \"tengo que\", generando culpa.", Icon: "AlertCircle"},
	{ID: "etiquetado", Title: "Etiquetado", Description: "Te pones etiquetas negativas a ti mismo en vez de describir el error.", Icon: "Tag"},
	{ID: "personalizacion", Title: "Personalización", Description: "Te culpas por eventos de los que no eres totalmente responsable.", Icon: "User"},
	{ID: "catastrofismo", Title: "Catastrofismo", Description: "Imaginas y esperas el peor de los escenarios posibles.", Icon: "CloudLightning"},
	{ID: "culpabilizacion", Title: "Culpabilización", Description: "Culpas a otros de tus problemas o te culpas por lo incontrolable.", Icon: "ShieldX"},
	{ID: "falacia-control", Title: "Falacia de Control", Description: "Sientes que no tienes control sobre nada o que eres responsable de todo.", Icon: "Compass"},
	{ID: "falacia-justicia", Title: "Falacia de Justicia", Description: "Sientes resentimiento porque crees que la vida debería ser justa.", Icon: "Scale"},
	{ID: "comparacion-social", Title: "Comparación Social", Description: "Te comparas con otros de forma que siempre sales perdiendo.", Icon: "Users"},
}
