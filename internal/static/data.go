// Package static holds the built-in datasets served when no store can answer.
package static

import "awareness-training-service/internal/domain"

// DefaultQuizID identifies the built-in assessment.
const DefaultQuizID = "cybersecurity-basics"

// Quizzes returns the built-in quizzes. Callers receive fresh slices.
func Quizzes() []domain.Quiz {
	return []domain.Quiz{fundamentalsQuiz()}
}

// Quiz looks up a built-in quiz by id.
func Quiz(id string) (domain.Quiz, bool) {
	for _, quiz := range Quizzes() {
		if quiz.ID == id {
			return quiz, true
		}
	}
	return domain.Quiz{}, false
}

// Leaderboard returns the fixed leaderboard shown when no scores exist.
func Leaderboard() []domain.LeaderboardRow {
	return []domain.LeaderboardRow{
		{Rank: 1, Name: "Treasure Mashabane", Department: "IT Security", Score: 9, Total: 10, Percentage: 90},
		{Rank: 2, Name: "Rebafenyi Mudau", Department: "Security Operations", Score: 8, Total: 10, Percentage: 80},
		{Rank: 3, Name: "Ditshego Kgwadi", Department: "Security Awareness", Score: 7, Total: 10, Percentage: 70},
		{Rank: 4, Name: "Thabo Mavundla", Department: "Cybersecurity Engineering", Score: 6, Total: 10, Percentage: 60},
	}
}

// Catalog returns the built-in training programs in display order.
func Catalog() []domain.TrainingProgram {
	return []domain.TrainingProgram{
		{
			ID:          "phishing",
			Title:       "Phishing Awareness Insights",
			Description: "Learn about the latest phishing techniques and how to recognize them through expert insights.",
			Type:        "phishing",
			ButtonText:  "View Insights",
			Link:        "https://www.cisa.gov/news-events/news/avoiding-social-engineering-and-phishing-attacks",
			Order:       1,
		},
		{
			ID:          "ransomware",
			Title:       "Ransomware Defense Guide",
			Description: "Access comprehensive resources about ransomware prevention and response strategies.",
			Type:        "ransomware",
			ButtonText:  "Access Guide",
			Link:        "https://www.cisa.gov/stopransomware",
			Order:       2,
		},
		{
			ID:          "hygiene",
			Title:       "Cyber Hygiene Best Practices",
			Description: "Discover essential security practices for password management and safe browsing.",
			Type:        "hygiene",
			ButtonText:  "Read Practices",
			Link:        "https://www.cisa.gov/sites/default/files/publications/Cyber%20Hygiene%20Services%20-%20Fact%20Sheet_S508C.pdf",
			Order:       3,
		},
		{
			ID:          "quiz",
			Title:       "Security Knowledge Assessment",
			Description: "Test your cybersecurity knowledge with comprehensive quizzes.",
			Type:        domain.ProgramTypeQuiz,
			Progress:    85,
			ButtonText:  "Take Assessment",
			QuizID:      DefaultQuizID,
			Order:       4,
		},
	}
}

func fundamentalsQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    DefaultQuizID,
		Title: "Cybersecurity Fundamentals Quiz",
		Questions: []domain.Question{
			{
				Prompt: "What is the most effective way to prevent phishing attacks?",
				Options: []string{
					"Installing antivirus software",
					"Verifying sender identity before clicking links",
					"Using strong passwords",
					"Updating software regularly",
				},
				CorrectOptionIndex: 1,
			},
			{
				Prompt: "Which of the following is a sign of a potential malware infection?",
				Options: []string{
					"Slow computer performance",
					"Unexpected pop-up windows",
					"Unfamiliar programs running",
					"All of the above",
				},
				CorrectOptionIndex: 3,
			},
			{
				Prompt: "What should you do if you receive a suspicious email?",
				Options: []string{
					"Forward it to colleagues",
					"Click links to investigate",
					"Report it to IT security",
					"Reply asking for verification",
				},
				CorrectOptionIndex: 2,
			},
			{
				Prompt: "How often should you update your passwords?",
				Options: []string{
					"Never, once set they are secure",
					"Every 90 days or when compromised",
					"Only when required by the system",
					"Every few years",
				},
				CorrectOptionIndex: 1,
			},
			{
				Prompt: "What is two-factor authentication?",
				Options: []string{
					"Using two different passwords",
					"Logging in from two devices",
					"Adding an extra security step beyond passwords",
					"Having two user accounts",
				},
				CorrectOptionIndex: 2,
			},
		},
	}
}
