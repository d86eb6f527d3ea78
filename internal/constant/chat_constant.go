package constant

// DocumentLoadedGreeting is returned when a document is uploaded without an
// initial question.
const DocumentLoadedGreeting = "Document loaded successfully! Ask me any questions about the document."
