package store

import "gorm.io/datatypes"

// SeedPostSet 内置的编辑文章，启动时写入一次
var SeedPostSet = []Post{
	{
		ID:          "upsc-tips-success",
		Title:       "Mastering UPSC Preparation: 13 Effective Tips for Success",
		Category:    "Exam",
		Subcategory: "UPSC",
		Image:       "/images/exam.png",
		Date:        "2025-07-20",
		Excerpt:     "Preparing for the UPSC Civil Services Exam can feel like a marathon. These simple yet powerful habits will keep you on track and motivated throughout the journey.",
		Content: `<p>The UPSC Civil Services Examination is arguably one of the toughest tests in India. With lakhs of aspirants and only a few hundred positions, it demands not just hard work but smart strategy.</p>
<p>Begin by familiarising yourself with the entire syllabus and analysing past question papers. Integrate newspaper reading into your routine and revise short notes frequently. NCERT textbooks lay a solid foundation before advanced material.</p>
<p>Create realistic timelines for both long-term and daily objectives, join a test series for Prelims and Mains, and form small discussion groups for answer-writing practice.</p>`,
		Tags: datatypes.JSON([]byte(`["strategy","habits","motivation"]`)),
	},
	{
		ID:          "ssc-cgl-strategies",
		Title:       "Decoding SSC CGL: Strategies and Resources to Ace the Exam",
		Category:    "Exam",
		Subcategory: "SSC",
		Image:       "/images/exam.png",
		Date:        "2025-07-18",
		Excerpt:     "The SSC Combined Graduate Level (CGL) exam opens the doors to prestigious government jobs. We outline the key topics, best books and a study plan that works.",
		Content: `<p>The SSC CGL examination consists of several tiers, each designed to assess different skills. Understanding the weight of each section helps you allocate your time wisely.</p>
<p>Start by mastering the basics of arithmetic and geometry, then work on reading comprehension, grammar and vocabulary simultaneously.</p>
<p>Create a schedule that mixes concept learning, practice questions and revision. Focus on accuracy first, then speed, and review mistakes after every mock test.</p>`,
		Tags: datatypes.JSON([]byte(`["cgl","resources","study-plan"]`)),
	},
	{
		ID:          "banking-exams-guide",
		Title:       "Banking Exams: A Comprehensive Guide to IBPS PO and RBI Grade B",
		Category:    "Exam",
		Subcategory: "Banking",
		Image:       "/images/exam.png",
		Date:        "2025-07-16",
		Excerpt:     "From IBPS PO to RBI Grade B, banking exams follow familiar patterns. Learn the structure, syllabus and preparation roadmap for a career in banking.",
		Content: `<p>Banking examinations in India follow a broadly similar structure: a preliminary screening, a mains examination and an interview round.</p>
<p>Quantitative aptitude, reasoning and English form the core of the preliminary stage, while the mains add general awareness with a banking focus.</p>
<p>Daily current-affairs reading and sectional mock tests are the two habits that separate successful candidates from the rest.</p>`,
		Tags: datatypes.JSON([]byte(`["ibps","rbi","banking"]`)),
	},
}
