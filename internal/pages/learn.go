package pages

import "github.com/starford/lifeos/internal/models"

// Learn is the SkillZone page. Selecting a course only changes emphasis.
type Learn struct {
	profile  LearnProfile
	courses  []models.Course
	badges   []models.Achievement
	tutor    string
	selected *int
}

// LearnProfile is the learner's static progress summary.
type LearnProfile struct {
	Level     int `json:"level"`
	XP        int `json:"xp"`
	Streak    int `json:"streak"`
	Completed int `json:"completed"`
}

// LearnView is the rendered SkillZone body.
type LearnView struct {
	Profile      LearnProfile         `json:"profile"`
	Courses      []models.Course      `json:"courses"`
	Selected     *int                 `json:"selected"`
	Achievements []models.Achievement `json:"achievements"`
	Tutor        string               `json:"tutor"`
}

// NewLearn mounts SkillZone with no course selected.
func NewLearn(env Env) *Learn {
	s := env.Seed.Learn
	return &Learn{
		profile: LearnProfile{Level: s.Level, XP: s.XP, Streak: s.Streak, Completed: s.Completed},
		courses: s.Courses,
		badges:  s.Achievements,
		tutor:   s.Tutor,
	}
}

// Route implements Page.
func (l *Learn) Route() string { return PathLearn }

// SelectCourse emphasises a course. Unknown ids are ignored.
func (l *Learn) SelectCourse(id int) bool {
	if findIndex(l.courses, func(c models.Course) bool { return c.ID == id }) < 0 {
		return false
	}
	l.selected = &id
	return true
}

// Render implements Page.
func (l *Learn) Render() View {
	return View{
		Route:    PathLearn,
		Title:    "SkillZone",
		Subtitle: "Master new skills with AI-powered personalized learning",
		Body: LearnView{
			Profile:      l.profile,
			Courses:      l.courses,
			Selected:     l.selected,
			Achievements: l.badges,
			Tutor:        l.tutor,
		},
	}
}
