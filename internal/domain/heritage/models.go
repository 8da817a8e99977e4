package heritage

import (
	"gorm.io/datatypes"
)

type CulturalDocument struct {
	Record                `bson:",inline"`
	Title                 string                       `gorm:"not null;column:title" bson:"title" json:"title"`
	Description           string                       `gorm:"column:description" bson:"description,omitempty" json:"description,omitempty"`
	ScriptType            string                       `gorm:"column:script_type" bson:"script_type,omitempty" json:"script_type,omitempty"`
	Language              string                       `gorm:"not null;index;column:language" bson:"language" json:"language"`
	OriginalText          string                       `gorm:"type:text;column:original_text" bson:"original_text,omitempty" json:"original_text,omitempty"`
	RestoredText          string                       `gorm:"type:text;column:restored_text" bson:"restored_text,omitempty" json:"restored_text,omitempty"`
	Translation           datatypes.JSONMap            `gorm:"column:translation" bson:"translation" json:"translation"`
	Region                string                       `gorm:"column:region" bson:"region,omitempty" json:"region,omitempty"`
	TimePeriod            string                       `gorm:"column:time_period" bson:"time_period,omitempty" json:"time_period,omitempty"`
	RestorationConfidence *float64                     `gorm:"column:restoration_confidence" bson:"restoration_confidence,omitempty" json:"restoration_confidence,omitempty"`
	Embeddings            datatypes.JSONSlice[float64] `gorm:"column:embeddings" bson:"embeddings,omitempty" json:"embeddings,omitempty"`
	Tags                  datatypes.JSONSlice[string]  `gorm:"column:tags" bson:"tags" json:"tags"`
	// SearchText is FoldText over title, original text and description. SQL stores only.
	SearchText string `gorm:"type:text;column:search_text" bson:"-" json:"-"`
}

func (CulturalDocument) TableName() string { return "cultural_documents" }

type FolkSong struct {
	Record               `bson:",inline"`
	Title                string                       `gorm:"not null;column:title" bson:"title" json:"title"`
	Performer            string                       `gorm:"column:performer" bson:"performer" json:"performer"`
	Region               string                       `gorm:"column:region" bson:"region" json:"region"`
	Language             string                       `gorm:"not null;index;column:language" bson:"language" json:"language"`
	Transcription        string                       `gorm:"type:text;column:transcription" bson:"transcription,omitempty" json:"transcription,omitempty"`
	AudioPath            string                       `gorm:"column:audio_path" bson:"audio_path,omitempty" json:"audio_path,omitempty"`
	Lyrics               string                       `gorm:"type:text;column:lyrics" bson:"lyrics,omitempty" json:"lyrics,omitempty"`
	CulturalSignificance string                       `gorm:"type:text;column:cultural_significance" bson:"cultural_significance,omitempty" json:"cultural_significance,omitempty"`
	Embeddings           datatypes.JSONSlice[float64] `gorm:"column:embeddings" bson:"embeddings,omitempty" json:"embeddings,omitempty"`
}

func (FolkSong) TableName() string { return "folk_songs" }

type Story struct {
	Record           `bson:",inline"`
	Title            string                              `gorm:"not null;column:title" bson:"title" json:"title"`
	Content          string                              `gorm:"type:text;column:content" bson:"content" json:"content"`
	SourceDocumentID string                              `gorm:"index;column:source_document_id" bson:"source_document_id,omitempty" json:"source_document_id,omitempty"`
	StoryType        StoryType                           `gorm:"not null;column:story_type" bson:"story_type" json:"story_type"`
	Language         string                              `gorm:"not null;column:language" bson:"language" json:"language"`
	AudioNarration   string                              `gorm:"column:audio_narration" bson:"audio_narration,omitempty" json:"audio_narration,omitempty"`
	QuizQuestions    datatypes.JSONSlice[map[string]any] `gorm:"column:quiz_questions" bson:"quiz_questions,omitempty" json:"quiz_questions,omitempty"`
}

func (Story) TableName() string { return "stories" }

type UserProgress struct {
	Record                  `bson:",inline"`
	UserID                  string                      `gorm:"not null;uniqueIndex;column:user_id" bson:"user_id" json:"user_id"`
	Badges                  datatypes.JSONSlice[string] `gorm:"column:badges" bson:"badges" json:"badges"`
	Points                  int                         `gorm:"not null;default:0;column:points" bson:"points" json:"points"`
	DocumentsExplored       datatypes.JSONSlice[string] `gorm:"column:documents_explored" bson:"documents_explored" json:"documents_explored"`
	TranslationsContributed int                         `gorm:"not null;default:0;column:translations_contributed" bson:"translations_contributed" json:"translations_contributed"`
	StoriesCompleted        int                         `gorm:"not null;default:0;column:stories_completed" bson:"stories_completed" json:"stories_completed"`
}

func (UserProgress) TableName() string { return "user_progress" }

// NewUserProgress is the zero-valued ledger entry handed out on first access.
func NewUserProgress(userID string) *UserProgress {
	return &UserProgress{
		Record:            NewRecord(),
		UserID:            userID,
		Badges:            datatypes.JSONSlice[string]{},
		DocumentsExplored: datatypes.JSONSlice[string]{},
	}
}

func (p *UserProgress) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}
