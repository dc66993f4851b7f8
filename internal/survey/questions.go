// Package survey runs the fixed intake questionnaire that feeds the
// diagnosis.
package survey

import "github.com/synkhq/synk/internal/core"

// Questions is the fixed intake questionnaire, in order. IDs are stable
// and referenced by the diagnosis prompt.
var Questions = []core.Question{
	{
		ID:      1,
		Text:    "En una escala del 1 (muy agotado/a) al 5 (lleno/a de energía), ¿cómo te sientes ahora mismo?",
		Type:    core.QuestionScale,
		Options: []string{"1", "2", "3", "4", "5"},
	},
	{
		ID:      2,
		Text:    "En la última semana, ¿has sentido más ganas de buscar conversaciones o de evitarlas?",
		Type:    core.QuestionMultipleChoice,
		Options: []string{"Buscar conversaciones", "Evitarlas", "Una mezcla de ambos"},
	},
	{
		ID:         3,
		Text:       "Cuando piensas en conocer a alguien nuevo, ¿cuál es tu primer sentimiento?",
		Type:       core.QuestionMultipleChoice,
		Options:    []string{"Emoción", "Curiosidad", "Nerviosismo", "Cansancio", "Escepticismo"},
		HelperText: "Ej: Emoción, Curiosidad, Nerviosismo, Cansancio, Escepticismo",
	},
	{
		ID:      4,
		Text:    "¿Cuál de estas opciones te parece más difícil?",
		Type:    core.QuestionMultipleChoice,
		Options: []string{"Iniciar una conversación", "Mantener una conversación"},
	},
	{
		ID:      5,
		Text:    "¿Te resulta fácil hablar de tus propios sentimientos y experiencias?",
		Type:    core.QuestionMultipleChoice,
		Options: []string{"Sí, bastante fácil", "Depende de la persona", "No, es difícil"},
	},
	{
		ID:      6,
		Text:    "¿Con qué frecuencia te preocupa lo que los demás piensan de ti después de una interacción social?",
		Type:    core.QuestionMultipleChoice,
		Options: []string{"Rara vez o nunca", "A veces", "Muy a menudo"},
	},
	{
		ID:      7,
		Text:    "Cuando estás con otros, ¿sientes que eres más tu 'verdadero yo' o que estás 'interpretando un papel'?",
		Type:    core.QuestionMultipleChoice,
		Options: []string{"Mi 'verdadero yo'", "Estoy 'interpretando un papel'"},
	},
	{
		ID:   8,
		Text: "¿Cuál es tu principal objetivo al conectar con gente nueva?",
		Type: core.QuestionMultipleChoice,
		Options: []string{
			"Encontrar amigos con intereses comunes",
			"Encontrar una pareja romántica",
			"Practicar mis habilidades sociales",
			"Aún no estoy seguro/a",
		},
	},
	{
		ID:      9,
		Text:    "¿Qué tan fácil te resulta establecer límites (por ejemplo, decir 'no' o 'no me siento cómodo/a con eso')?",
		Type:    core.QuestionMultipleChoice,
		Options: []string{"Muy fácil", "Más o menos", "Es muy difícil"},
	},
	{
		ID:   10,
		Text: "Si tienes una experiencia social difícil, ¿cuál es tu primera reacción?",
		Type: core.QuestionMultipleChoice,
		Options: []string{
			"Intento aprender de ella",
			"Me frustro con la otra persona",
			"Tiendo a culparme y a sentirme mal por un tiempo",
		},
	},
	{
		ID:      11,
		Text:    "¿Sientes una sensación de soledad que te gustaría cambiar?",
		Type:    core.QuestionMultipleChoice,
		Options: []string{"Sí", "No", "Un poco"},
	},
	{
		ID:         12,
		Text:       "Para terminar, ¿qué palabra describe mejor lo que buscas aquí?",
		Type:       core.QuestionMultipleChoice,
		Options:    []string{"Confianza", "Comprensión", "Conexión", "Calma"},
		HelperText: "Ej: Confianza, Comprensión, Conexión, Calma",
	},
}
