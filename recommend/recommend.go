// Package recommend scores a career profile with a fixed, pre-trained linear
// regression and maps the score onto a suggested level and plan. The model is
// opaque: weights were fitted offline and are never retrained at runtime.
package recommend

// Input is the career profile submitted for scoring.
type Input struct {
	Age              int `json:"idade"`
	YearsExperience  int `json:"anosExperiencia"`
	CoursesCompleted int `json:"cursosConcluidos"`
	// 0 = junior, 1 = mid, 2 = senior
	CurrentLevel int `json:"nivelAtual"`
	// 0 = on-site, 1 = wants remote
	WantsRemote int `json:"desejaTrabalhoRemoto"`
}

// Recommendation is the scored output.
type Recommendation struct {
	Score           float64 `json:"pontuacaoRecomendacao"`
	SuggestedLevel  string  `json:"nivelSugerido"`
	PlanSuggestion  string  `json:"sugestaoPlanoCarreira"`
}

const (
	midThreshold    = 0.45
	seniorThreshold = 0.75
)

// Pre-trained regression coefficients over
// (age, yearsExperience, coursesCompleted, currentLevel, wantsRemote).
var weights = struct {
	bias, age, experience, courses, level, remote float64
}{
	bias:       0.05,
	age:        0.004,
	experience: 0.035,
	courses:    0.045,
	level:      0.12,
	remote:     0.01,
}

// Scorer evaluates career profiles. Stateless and safe for concurrent use.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Recommend scores the profile and picks the suggested level.
func (s *Scorer) Recommend(in Input) Recommendation {
	score := weights.bias +
		weights.age*float64(in.Age) +
		weights.experience*float64(in.YearsExperience) +
		weights.courses*float64(in.CoursesCompleted) +
		weights.level*float64(in.CurrentLevel) +
		weights.remote*float64(in.WantsRemote)

	out := Recommendation{Score: score}

	switch {
	case score < midThreshold:
		out.SuggestedLevel = "Júnior"
		out.PlanSuggestion = "Focar em formação técnica básica, cursos introdutórios e projetos guiados."
	case score < seniorThreshold:
		out.SuggestedLevel = "Pleno"
		out.PlanSuggestion = "Aprofundar especialização, assumir pequenas lideranças de projeto e mentorias pontuais."
	default:
		out.SuggestedLevel = "Sênior"
		out.PlanSuggestion = "Atuar como referência técnica, liderar times e apoiar decisões estratégicas da área."
	}

	return out
}
