package analyzer

// Document is the unit of analysis: body text plus the structured fields the
// CMS declares alongside it. The analyzer never mutates a Document.
type Document struct {
	Text           string         `json:"text"`
	Keywords       []string       `json:"keywords,omitempty"`
	InternalLinks  int            `json:"internalLinks"`
	StructuredData StructuredData `json:"structuredData"`
}

// StructuredData flags which schema.org markup the page carries.
type StructuredData struct {
	Article bool `json:"article"`
	FAQ     bool `json:"faq"`
	HowTo   bool `json:"howTo"`
	Review  bool `json:"review"`
}

// ReadabilityReport holds the classic readability indices for one text.
type ReadabilityReport struct {
	WordCount          int     `json:"wordCount"`
	SentenceCount      int     `json:"sentenceCount"`
	ParagraphCount     int     `json:"paragraphCount"`
	SyllableCount      int     `json:"syllableCount"`
	FleschReadingEase  float64 `json:"fleschReadingEase"`
	FleschKincaidGrade float64 `json:"fleschKincaidGrade"`
	GunningFog         float64 `json:"gunningFog"`
	ColemanLiau        float64 `json:"colemanLiau"`
	SMOG               float64 `json:"smog"`
	ARI                float64 `json:"automatedReadability"`
	ComplexWordPercent float64 `json:"complexWordPercent"`
	Level              string  `json:"readabilityLevel"`
}

// CompatibilityScore estimates how well a document's structure suits
// AI-driven search summarization.
type CompatibilityScore struct {
	SemanticStructure float64 `json:"semanticStructure"`
	HeadingHierarchy  float64 `json:"headingHierarchy"`
	KeywordDensity    float64 `json:"keywordDensity"`
	ContentLength     float64 `json:"contentLength"`
	InternalLinking   float64 `json:"internalLinking"`
	StructuredData    float64 `json:"structuredData"`
	Overall           float64 `json:"overall"`
}

// VoiceSearchProfile scores a document for spoken-query discovery.
type VoiceSearchProfile struct {
	ConversationalTone float64  `json:"conversationalTone"`
	QuestionAnswer     float64  `json:"questionAnswer"`
	NaturalLanguage    float64  `json:"naturalLanguage"`
	FeaturedSnippet    float64  `json:"featuredSnippet"`
	LocalSearch        float64  `json:"localSearch"`
	MobileOptimized    float64  `json:"mobileOptimized"`
	SpeedOptimized     float64  `json:"speedOptimized"`
	Suggestions        []string `json:"suggestions"`
}
