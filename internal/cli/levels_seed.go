package cli

import (
	"github.com/google/uuid"

	"ai-learning-service/internal/domain"
)

// defaultLevels is the built-in AI curriculum. Level 1 starts unlocked;
// everything after it is gated behind the previous level's quiz.
func defaultLevels() []domain.Level {
	levels := []domain.Level{
		{
			LevelNumber: 1,
			Title:       "What is Artificial Intelligence?",
			Status:      domain.StatusUnlocked,
			Intro:       "AI is about teaching computers to do smart things that usually require human thinking. You already use it every day, even if you don't notice it.",
			Content:     "At its core, AI is a collection of techniques that help computers perform tasks that normally need human judgment: recognizing objects in photos, understanding spoken language, recommending products. Most AI in use today is narrow AI, built for one specific task. The idea of a single system that can do everything a human can is called general AI and remains a research topic.",
			Examples: []string{
				"Song or video recommendations on streaming apps",
				"Search engines suggesting queries as you type",
				"Camera apps automatically focusing on faces",
			},
			Questions: []domain.QuizQuestion{
				{
					Question: "Which of these is a realistic example of AI today?",
					Options: []string{
						"A robot that feels emotions exactly like humans",
						"A music app that recommends songs you might like",
						"A paper book sitting on a shelf",
						"A simple mechanical clock",
					},
					CorrectIndex: 1,
				},
				{
					Question: "AI is best described as:",
					Options: []string{
						"Any program that runs on a computer",
						"Technology that helps computers perform tasks requiring human-like judgment",
						"Only robots that walk and talk",
						"A type of hardware chip only",
					},
					CorrectIndex: 1,
				},
				{
					Question: "Most AI systems used today are:",
					Options: []string{
						"General AI that can do every human task",
						"Narrow AI focused on specific tasks",
						"Completely random and uncontrolled",
						"Only used in secret labs",
					},
					CorrectIndex: 1,
				},
				{
					Question: "Which daily activity likely uses AI?",
					Options: []string{
						"Writing with a pen on paper",
						"Using a calculator for 2 + 2",
						"Getting movie suggestions on a streaming platform",
						"Boiling water on a stove",
					},
					CorrectIndex: 2,
				},
				{
					Question: "AI works best when it is viewed as:",
					Options: []string{
						"A perfect replacement for all human work",
						"A supportive tool that helps humans",
						"A way to avoid checking information",
						"A secret feature that no one should understand",
					},
					CorrectIndex: 1,
				},
			},
		},
		{
			LevelNumber: 2,
			Title:       "Basics of Machine Learning",
			Status:      domain.StatusLocked,
			Intro:       "Machine Learning is a subset of AI where models learn patterns from data instead of following hand-written rules.",
			Content:     "Machine Learning (ML) uses algorithms to learn from examples and make predictions or decisions. The three broad families are supervised learning, unsupervised learning, and reinforcement learning. ML powers spam detection, recommendation engines, and image recognition.",
			Examples: []string{
				"Spam filters learning from flagged messages",
				"Photo apps grouping pictures of the same person",
			},
			Questions: []domain.QuizQuestion{
				{
					Question:     "Machine Learning is a subset of:",
					Options:      []string{"Robotics", "AI", "Databases", "Networking"},
					CorrectIndex: 1,
				},
				{
					Question:     "What does an ML model learn from?",
					Options:      []string{"Code comments", "Data", "Design docs", "Random numbers"},
					CorrectIndex: 1,
				},
				{
					Question:     "Which of these is an ML application?",
					Options:      []string{"Spam detection", "A light switch", "A paper calendar", "A doorbell"},
					CorrectIndex: 0,
				},
			},
		},
		{
			LevelNumber: 3,
			Title:       "Data: the Fuel of AI",
			Status:      domain.StatusLocked,
			Intro:       "Models are only as good as the data they learn from. This level looks at where data comes from and why quality matters.",
			Content:     "Training data teaches a model what the world looks like. Biased, incomplete, or mislabeled data produces models that repeat those flaws at scale. Good practice means collecting representative samples, labeling carefully, and always holding out data the model never saw for honest evaluation.",
			Questions: []domain.QuizQuestion{
				{
					Question: "Why is training data held out for evaluation?",
					Options: []string{
						"To make training faster",
						"To measure the model on examples it never saw",
						"To save disk space",
						"Because labels are expensive",
					},
					CorrectIndex: 1,
				},
				{
					Question: "A model trained on biased data will:",
					Options: []string{
						"Automatically correct the bias",
						"Repeat the bias at scale",
						"Refuse to make predictions",
						"Only work on weekends",
					},
					CorrectIndex: 1,
				},
				{
					Question: "Representative data means:",
					Options: []string{
						"Data collected from one loud user",
						"Data covering the real variety of cases the model will face",
						"Only perfectly clean data",
						"Data generated randomly",
					},
					CorrectIndex: 1,
				},
			},
		},
		{
			LevelNumber: 4,
			Title:       "Neural Networks and Deep Learning",
			Status:      domain.StatusLocked,
			Intro:       "Deep learning stacks simple computing units into layers that learn progressively richer representations.",
			Content:     "A neural network is built from layers of simple units whose connection weights are adjusted during training. Deep networks with many layers can learn features directly from raw inputs like pixels or audio, which is why they dominate vision and speech tasks. Training adjusts weights to reduce the gap between predictions and known answers.",
			Questions: []domain.QuizQuestion{
				{
					Question:     "A neural network learns by adjusting its:",
					Options:      []string{"Power supply", "Connection weights", "Case fans", "Keyboard layout"},
					CorrectIndex: 1,
				},
				{
					Question: "Deep learning is especially strong at:",
					Options: []string{
						"Sorting physical mail",
						"Learning features from raw data like images and audio",
						"Replacing electricity",
						"Printing documents",
					},
					CorrectIndex: 1,
				},
				{
					Question: "Training aims to:",
					Options: []string{
						"Maximize the gap between predictions and answers",
						"Reduce the gap between predictions and known answers",
						"Delete the dataset",
						"Randomize all weights forever",
					},
					CorrectIndex: 1,
				},
			},
		},
		{
			LevelNumber: 5,
			Title:       "Using AI Responsibly",
			Status:      domain.StatusLocked,
			Intro:       "Knowing what AI can do is half the story; knowing when to trust it is the other half.",
			Content:     "AI systems make confident-looking mistakes. Responsible use means keeping humans in the loop for consequential decisions, checking outputs against reliable sources, and being transparent about where AI was involved. Sensitive areas like health, hiring, and lending demand extra care because errors carry real costs for real people.",
			Questions: []domain.QuizQuestion{
				{
					Question: "For consequential decisions, AI output should be:",
					Options: []string{
						"Trusted blindly",
						"Reviewed by a human",
						"Ignored entirely",
						"Deleted",
					},
					CorrectIndex: 1,
				},
				{
					Question:     "Which area demands extra care when applying AI?",
					Options:      []string{"Hiring decisions", "Choosing a wallpaper", "Naming a pet", "Picking a font"},
					CorrectIndex: 0,
				},
				{
					Question: "A good habit when using AI-generated answers is to:",
					Options: []string{
						"Check them against reliable sources",
						"Repeat them louder",
						"Never question them",
						"Hide that AI was involved",
					},
					CorrectIndex: 0,
				},
			},
		},
	}

	for i := range levels {
		levels[i].ID = uuid.NewString()
		for j := range levels[i].Questions {
			levels[i].Questions[j].ID = uuid.NewString()
		}
	}
	return levels
}
