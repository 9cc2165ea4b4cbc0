package domain

// LocalizedString carries the two languages the app ships with.
type LocalizedString struct {
	EN string `bson:"en" json:"en"`
	UK string `bson:"uk" json:"uk"`
}

// In returns the text for the given language code, falling back to English.
func (l LocalizedString) In(lang string) string {
	if lang == LanguageUK && l.UK != "" {
		return l.UK
	}
	return l.EN
}

// Supported language codes (profile preference and localized fields).
const (
	LanguageEN = "en"
	LanguageUK = "uk"
)

// Exercise is a single entry of the shared exercise library.
// The library is reference data: loaded once, never mutated per-user.
type Exercise struct {
	ID           string          `bson:"_id" json:"id"`
	Name         LocalizedString `bson:"name" json:"name"`
	MuscleGroup  string          `bson:"muscleGroup" json:"muscleGroup"` // e.g., "Chest", "Legs", "Back"
	Equipment    string          `bson:"equipment,omitempty" json:"equipment,omitempty"`
	ImageURL     string          `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	VideoURL     string          `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"`
	Instructions LocalizedString `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

// BuiltinExercises returns the starter library seeded into an empty store.
// IDs are stable string constants so strength records and workout logs can
// reference them across devices.
func BuiltinExercises() []Exercise {
	return []Exercise{
		{
			ID:          "barbell-squat",
			Name:        LocalizedString{EN: "Barbell Squat", UK: "Присідання зі штангою"},
			MuscleGroup: "Legs",
			Equipment:   "Barbell",
			Instructions: LocalizedString{
				EN: "Brace your core, keep the bar over mid-foot and squat below parallel.",
				UK: "Напружте корпус, тримайте штангу над серединою стопи та присідайте нижче паралелі.",
			},
		},
		{
			ID:          "bench-press",
			Name:        LocalizedString{EN: "Bench Press", UK: "Жим лежачи"},
			MuscleGroup: "Chest",
			Equipment:   "Barbell",
			Instructions: LocalizedString{
				EN: "Retract your shoulder blades, lower the bar to mid-chest and press up.",
				UK: "Зведіть лопатки, опустіть штангу до середини грудей і вижміть вгору.",
			},
		},
		{
			ID:          "deadlift",
			Name:        LocalizedString{EN: "Deadlift", UK: "Станова тяга"},
			MuscleGroup: "Back",
			Equipment:   "Barbell",
			Instructions: LocalizedString{
				EN: "Hinge at the hips, keep a neutral spine and drive through the floor.",
				UK: "Нахиляйтеся в кульшових суглобах, тримайте спину нейтральною і тисніть у підлогу.",
			},
		},
		{
			ID:          "overhead-press",
			Name:        LocalizedString{EN: "Overhead Press", UK: "Жим стоячи"},
			MuscleGroup: "Shoulders",
			Equipment:   "Barbell",
			Instructions: LocalizedString{
				EN: "Press the bar overhead in a straight line, squeezing glutes for stability.",
				UK: "Вижміть штангу над головою по прямій лінії, напружуючи сідниці для стабільності.",
			},
		},
		{
			ID:          "barbell-row",
			Name:        LocalizedString{EN: "Barbell Row", UK: "Тяга штанги в нахилі"},
			MuscleGroup: "Back",
			Equipment:   "Barbell",
			Instructions: LocalizedString{
				EN: "Hinge forward, pull the bar to your lower ribs and control the descent.",
				UK: "Нахиліться вперед, підтягніть штангу до нижніх ребер і контролюйте опускання.",
			},
		},
		{
			ID:          "pull-up",
			Name:        LocalizedString{EN: "Pull-Up", UK: "Підтягування"},
			MuscleGroup: "Back",
			Equipment:   "Bodyweight",
			Instructions: LocalizedString{
				EN: "Hang from the bar with a full grip and pull until your chin clears it.",
				UK: "Повисніть на перекладині повним хватом і підтягніться, поки підборіддя не буде вище неї.",
			},
		},
	}
}
