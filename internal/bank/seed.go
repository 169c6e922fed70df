package bank

// Built-in subject names.
const (
	SubjectAITools = "AI Tools"
	SubjectADBMS   = "ADBMS"
	SubjectPython  = "Python Programming"
)

// BuiltinNames returns the built-in subject names in catalog order.
func BuiltinNames() []string {
	return []string{SubjectAITools, SubjectADBMS, SubjectPython}
}

func builtinSubjects() []Subject {
	return []Subject{
		{
			Name: SubjectAITools,
			Questions: []Question{
				MultipleChoice("Which of these is an AI framework by Google?", "TensorFlow",
					"TensorFlow", "React", "Bootstrap", "Docker"),
				FreeText("Name one popular AI programming language.", "python"),
				MultipleChoice("What does NLP stand for?", "Natural Language Processing",
					"Natural Language Processing", "Neural Logic Program", "Network Learning Process", "None"),
			},
		},
		{
			Name: SubjectADBMS,
			Questions: []Question{
				MultipleChoice("Which of these is an example of an ADBMS?", "Oracle 12c",
					"Oracle 12c", "MS Word", "Google Chrome", "Photoshop"),
				FreeText("What does ADBMS stand for?", "advanced database management system"),
				MultipleChoice("Which command retrieves data from a database?", "SELECT",
					"SELECT", "DELETE", "INSERT", "UPDATE"),
			},
		},
		{
			Name: SubjectPython,
			Questions: []Question{
				MultipleChoice("Which keyword is used to define a function in Python?", "def",
					"def", "function", "define", "fun"),
				FreeText("What symbol is used for comments in Python?", "#"),
				MultipleChoice("Which library is used for numerical computation?", "NumPy",
					"NumPy", "Pandas", "Tkinter", "Flask"),
			},
		},
	}
}
