package summarizer

const systemPrompt = "You provide concise and insightful summaries."

var summarizePrompts = map[string]string{
	"en": `
You are an expert summarizer. Given the following YouTube video transcript, provide:

1. **Theme of the video**
2. **Key ideas discussed**
3. **Main takeaways**
4. **Top 5 keywords**
5. **3 main topic categories**

Provide a structured summary.

Transcript:
`,
	"fr": `
Vous êtes un expert en résumé. Étant donné la transcription vidéo YouTube suivante, fournissez:

1. **Thème de la vidéo**
2. **Idées clés discutées**
3. **Principal à retenir**
4. **5 mots-clés principaux**
5. **3 catégories principales**

Fournir un résumé structuré.

Transcription:
`,
}

var categorizePrompts = map[string]string{
	"en": "Classify the following video transcript into one broad category (e.g., Technology, Business, Education, Science, Entertainment, Motivation, Health, News, etc.):\n\n",
	"fr": "Classez la transcription vidéo suivante dans une grande catégorie (par ex. Technologie, Affaires, Éducation, Science, Divertissement, Motivation, Santé, Actualités, etc.) :\n\n",
}

var keywordPrompts = map[string]string{
	"en": "Extract the top 5 keywords from the following transcript:\n\n",
	"fr": "Extrayez les 5 mots-clés principaux de la transcription suivante :\n\n",
}
