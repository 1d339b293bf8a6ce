package constants

import "studyflow/internal/models"

// StudyMethods maps each task type to the technique shown next to its
// sessions.
var StudyMethods = map[models.TaskType]string{
	models.TaskReading:      "SQ3R Method",
	models.TaskProblemSet:   "Worked Examples",
	models.TaskEssay:        "Structured Outlining",
	models.TaskExamPrep:     "Active Recall",
	models.TaskMemorization: "Spaced Repetition",
}

// StudyTips holds the one-line tip displayed with a task's first session.
var StudyTips = map[models.TaskType]string{
	models.TaskReading:      "Survey, Question, Read, Recite, Review. End with 5 retrieval questions.",
	models.TaskProblemSet:   "Start with worked examples, then practice independently. Keep an error log.",
	models.TaskEssay:        "Create detailed outline first, then write in focused 25-minute sprints.",
	models.TaskExamPrep:     "Use flashcards and practice tests. Mix different topics (interleaving).",
	models.TaskMemorization: "Active recall with flashcards. Review in increasingly spaced intervals.",
}
