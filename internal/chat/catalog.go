// Package chat runs the coached practice roleplays and the connect
// conversations, both backed by the oracle.
package chat

import "github.com/synkhq/synk/internal/core"

// DefaultScenario is used when the diagnosis recommends nothing usable.
const DefaultScenario = "general"

// Scenarios are the practice roleplays, keyed by the values the
// diagnosis may recommend.
var Scenarios = map[string]core.Scenario{
	"social_anxiety": {
		Key:          "social_anxiety",
		Title:        "Iniciar una Conversación",
		Module:       "'Rompehielos'",
		Character:    "Alex",
		Setting:      "Serás 'Alex', alguien nuevo que el usuario conoce en una cafetería local. El objetivo del usuario es iniciar una conversación contigo usando una pregunta abierta.",
		Instructions: "Comienza diciendo 'Hola'. Responde positivamente si el usuario hace una buena pregunta. Si te devuelven una respuesta cerrada como 'hola', guíalos amablemente como El Coach para que lo intenten de nuevo.",
	},
	"authenticity_boundaries": {
		Key:          "authenticity_boundaries",
		Title:        "Establecer un Límite",
		Module:       "'Rechazar Cortésmente'",
		Character:    "Ben",
		Setting:      "Serás 'Ben', un conocido amigable pero insistente. El objetivo del usuario es rechazar cortésmente tu petición de salir ahora mismo.",
		Instructions: "Comienza charlando normalmente por un mensaje, luego pregunta al usuario si quiere ir al cine ahora mismo. Si dicen que no, sé un poco persistente (ej., '¡Oh, vamos, será divertido!'). Si dicen que no por segunda vez, cede y termina la escena positivamente.",
	},
	"communication_gaps": {
		Key:          "communication_gaps",
		Title:        "Mantener una Conversación",
		Module:       "'Encontrando Conexiones'",
		Character:    "Sam",
		Setting:      "Eres 'Sam', un/a nuevo/a colega. El usuario acaba de iniciar una conversación. Tus respuestas deben ser un poco breves, requiriendo que el usuario haga preguntas de seguimiento para mantener viva la conversación.",
		Instructions: "El usuario comenzará. Responde a su pregunta, pero no ofrezcas mucha información extra a menos que hagan una pregunta de seguimiento. El objetivo es que practiquen profundizar más.",
	},
	"social_energy": {
		Key:          "social_energy",
		Title:        "Una Charla de Bajo Riesgo",
		Module:       "'Práctica Suave'",
		Character:    "Casey",
		Setting:      "Eres 'Casey', un/a bibliotecario/a amigable. El usuario está pidiendo una recomendación de libro. El objetivo es una interacción corta, positiva y de baja energía.",
		Instructions: "Sé cálido/a y servicial. Mantén la conversación ligera y centrada en los libros. Termina la conversación después de 3-4 intercambios.",
	},
	"general": {
		Key:          "general",
		Title:        "Práctica General de Conversación",
		Module:       "'Charla Abierta'",
		Character:    "Jordan",
		Setting:      "Eres 'Jordan', alguien a quien el usuario conoce a través de un amigo en común. El objetivo es simplemente tener una conversación agradable durante unos pocos intercambios.",
		Instructions: "Sé un/a compañero/a de chat amigable y participativo/a. Habla sobre pasatiempos, planes de fin de semana u otros temas comunes.",
	},
}

// Profiles are the connect personas, in display order.
var Profiles = []core.Profile{
	{
		ID:          "sofia",
		Name:        "Sofía",
		Avatar:      "avatar1",
		Bio:         "Amante del arte, la poesía y las conversaciones profundas. Siempre buscando inspiración en los pequeños detalles.",
		Personality: []string{"Creativa", "Reflexiva", "Empática"},
	},
	{
		ID:          "leo",
		Name:        "Leo",
		Avatar:      "avatar2",
		Bio:         "Viajero, fotógrafo y contador de historias. Hablemos de tu próximo gran viaje o del último libro que te atrapó.",
		Personality: []string{"Aventurero", "Curioso", "Optimista"},
	},
	{
		ID:          "clara",
		Name:        "Clara",
		Avatar:      "avatar3",
		Bio:         "Programadora y aficionada a los puzzles. Disfruto de una buena charla sobre tecnología, ciencia o cualquier acertijo lógico.",
		Personality: []string{"Analítica", "Ingeniosa", "Directa"},
	},
	{
		ID:          "mateo",
		Name:        "Mateo",
		Avatar:      "avatar4",
		Bio:         "Guitarrista y amante de la música indie. Busco conversaciones tranquilas y compartir buenas vibras.",
		Personality: []string{"Relajado", "Amable", "Introvertido"},
	},
}

// ProfileByID looks up a connect persona.
func ProfileByID(id string) (core.Profile, bool) {
	for _, p := range Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return core.Profile{}, false
}

// PracticePrompts are reflective writing prompts shown on the workshop tab.
var PracticePrompts = []string{
	"¿Qué es algo que te hizo sonreír hoy?",
	"Describe un desafío reciente y cómo te sentiste al enfrentarlo.",
	"¿Cuál es una cosa por la que estás agradecido/a ahora mismo?",
	"Si pudieras decirle una cosa a tu yo del pasado, ¿qué sería?",
	"Escribe sobre un lugar donde te sientas en completa paz.",
	"¿Cuál es una pequeña meta que podrías lograr esta semana?",
}
