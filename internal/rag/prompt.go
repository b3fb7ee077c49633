package rag

import "strings"

const contextSlot = "{text}"

const promptFR = `
Tu es un assistant intelligent qui aide à résumer des transcriptions de réunions professionnelles. Tu vas analyser le contenu suivant et fournir les éléments suivants en français, de manière claire et concise, avec des informations précises et attribution des intervenants.

Contenu :
{text}

Tâches :
1. Détermine le sujet principal de la réunion.
2. Propose quelques hashtags pertinents (une seule ligne).
3. Résume les points clés discutés, en indiquant qui les a exprimés.
4. Liste les questions posées (avec les auteurs) et les réponses correspondantes (avec les répondants), s’il y en a.
5. Indique les décisions prises, s’il y en a.
6. Détaille les actions à suivre avec les personnes responsables, s’il y en a.

Format :
Sujet : ...
Hashtags : #projetx #client ...
Principaux enseignements :
- ...
Questions / Réponses :
- ...
Décisions :
- ...
Actions à suivre :
- ...
`

const promptEN = `
You are a smart assistant helping to summarize transcripts of professional meetings. Analyze the transcript below and provide the following information in English, with concise yet precise language and speaker attribution.

Content:
{text}

Tasks:
1. Identify the main topic of the meeting.
2. Propose a few relevant hashtags (single line).
3. Summarize the key takeaways, indicating who expressed them.
4. List the questions asked (with who asked) and the answers (with who answered), if any.
5. Note any decisions that were made, if applicable.
6. Outline any action items and who is responsible, if applicable.

Format:
Topic: ...
Hashtags: #projectx #client ...
Main takeaways:
- ...
Questions / Answers:
- ...
Decisions:
- ...
Action items:
- ...
`

// promptFor returns the summary prompt template for language; anything but
// French gets the English one.
func promptFor(language string) string {
	if language == "fr" {
		return promptFR
	}
	return promptEN
}

// retrievalQuery is the template without its context slot.
func retrievalQuery(template string) string {
	return strings.TrimSpace(strings.Replace(template, contextSlot, "", 1))
}

func fillPrompt(template string, context []string) string {
	return strings.Replace(template, contextSlot, strings.Join(context, "\n\n"), 1)
}
