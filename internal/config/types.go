package config

// Config is the quiz configuration file.
type Config struct {
	Version        int             `yaml:"version" validate:"required,eq=1"`
	Quiz           QuizConfig      `yaml:"quiz"`
	DefaultChapter string          `yaml:"default_chapter"`
	Chapters       []ChapterConfig `yaml:"chapters" validate:"dive"`
	Log            LogConfig       `yaml:"log"`
	Serve          ServeConfig     `yaml:"serve"`
}

// QuizConfig holds the per-run constants.
type QuizConfig struct {
	QuestionsPerRun    int `yaml:"questions_per_run" validate:"min=1,max=500"`
	SecondsPerQuestion int `yaml:"seconds_per_question" validate:"min=1,max=3600"`
}

// ChapterConfig names a deck source.
type ChapterConfig struct {
	ID     string `yaml:"id" validate:"required,excludesall=/?#"`
	Title  string `yaml:"title"`
	Source string `yaml:"source" validate:"required"`
}

// LogConfig selects the logger level and output format.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
	Format string `yaml:"format" validate:"oneof=pretty json"`
}

// ServeConfig configures the browser front end.
type ServeConfig struct {
	Addr           string   `yaml:"addr" validate:"hostname_port"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,url"`
}

// Chapter returns the chapter with id.
func (c Config) Chapter(id string) (ChapterConfig, bool) {
	for _, chapter := range c.Chapters {
		if chapter.ID == id {
			return chapter, true
		}
	}
	return ChapterConfig{}, false
}
