// Package serialize implements the core's C9 output stage: a `<stem>.md`
// sibling (YAML frontmatter plus the rewritten body) and a `<stem>.json`
// sibling (the opaque fact container; the canonical entity table travels in
// the frontmatter's normalization section), each file written with
// temp-then-rename atomicity.
package serialize

import (
	"sort"

	"github.com/entityfusion/fusion/pkg/document"
)

// yamlConversion mirrors document.ConversionMeta with the fixed key order
// from the output schema.
type yamlConversion struct {
	Engine           string  `yaml:"engine"`
	PageCount        int     `yaml:"page_count"`
	ConversionTimeMS float64 `yaml:"conversion_time_ms"`
	SourceFile       string  `yaml:"source_file"`
	Format           string  `yaml:"format"`
}

type yamlContentAnalysis struct {
	CharCount         int            `yaml:"char_count"`
	WordCount         int            `yaml:"word_count"`
	AvgWordLength     float64        `yaml:"avg_word_length"`
	KeywordDensity    float64        `yaml:"keyword_density"`
	StructuredDensity float64        `yaml:"structured_density"`
	CategoryHits      map[string]int `yaml:"category_hits,omitempty"`
	Genre             string         `yaml:"genre"`
	HasTables         bool           `yaml:"has_tables"`
	HasImages         bool           `yaml:"has_images"`
	HasFormulas       bool           `yaml:"has_formulas"`
	HasCode           bool           `yaml:"has_code"`
	HasLists          bool           `yaml:"has_lists"`
	HasHeaders        bool           `yaml:"has_headers"`
}

type yamlProcessing struct {
	Stage         string `yaml:"stage"`
	ContentLength int    `yaml:"content_length"`
}

type yamlRouting struct {
	Strategy              string  `yaml:"strategy"`
	PatternSet            string  `yaml:"pattern_set"`
	Confidence            float64 `yaml:"confidence"`
	Reasoning             string  `yaml:"reasoning"`
	SkipEntityExtraction  bool    `yaml:"skip_entity_extraction"`
	EnableDeepExtraction  bool    `yaml:"enable_deep_domain_extraction"`
	DomainSpecialization  string  `yaml:"domain_specialization_route"`
}

type yamlDomainClassification struct {
	Routing         yamlRouting        `yaml:"routing"`
	TopDomains      []string           `yaml:"top_domains"`
	TopDocumentType []string           `yaml:"top_document_types"`
	Domains         map[string]float64 `yaml:"domains"`
	DocumentTypes   map[string]float64 `yaml:"document_types"`
}

type yamlSpan struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

type yamlRawMention struct {
	Text       string   `yaml:"text"`
	Span       yamlSpan `yaml:"span"`
	Confidence float64  `yaml:"confidence"`
	Subtype    string   `yaml:"subtype,omitempty"`
	Source     string   `yaml:"source,omitempty"`
}

type yamlEntityMention struct {
	Text string   `yaml:"text"`
	Span yamlSpan `yaml:"span"`
}

type yamlCanonicalEntity struct {
	ID        string              `yaml:"id"`
	Type      string              `yaml:"type"`
	Normalized string             `yaml:"normalized"`
	Aliases   []string            `yaml:"aliases"`
	Count     int                 `yaml:"count"`
	Mentions  []yamlEntityMention `yaml:"mentions"`
	Metadata  map[string]any      `yaml:"metadata,omitempty"`
}

type yamlNormalization struct {
	ProcessingTimeMS  float64               `yaml:"processing_time_ms"`
	CanonicalEntities []yamlCanonicalEntity `yaml:"canonical_entities"`
}

// yamlFrontmatter is the fixed-order top-level document emitted between the
// `---` delimiters: conversion, content_analysis, processing,
// domain_classification, raw_entities, normalization, in that order,
// per the output schema in §6.
type yamlFrontmatter struct {
	Conversion    yamlConversion              `yaml:"conversion"`
	Content       yamlContentAnalysis         `yaml:"content_analysis"`
	Processing    yamlProcessing              `yaml:"processing"`
	Domain        yamlDomainClassification    `yaml:"domain_classification"`
	RawEntities   map[string][]yamlRawMention `yaml:"raw_entities"`
	Normalization yamlNormalization           `yaml:"normalization"`
	Truncated     bool                        `yaml:"truncated,omitempty"`
}

var entityKindLabels = map[document.EntityKind]string{
	document.KindPerson:      "person",
	document.KindOrg:         "org",
	document.KindLoc:         "loc",
	document.KindGPE:         "gpe",
	document.KindDate:        "date",
	document.KindTime:        "time",
	document.KindMoney:       "money",
	document.KindMeasurement: "measurement",
	document.KindPhone:       "phone",
	document.KindEmail:       "email",
	document.KindURL:         "url",
	document.KindRegulation:  "regulation",
}

// buildFrontmatter projects a Document's frontmatter fields and entity
// tables into the fixed-schema emission form.
func buildFrontmatter(doc *document.Document) yamlFrontmatter {
	fm := doc.Frontmatter

	out := yamlFrontmatter{
		Conversion: yamlConversion{
			Engine:           fm.Conversion.Engine,
			PageCount:        fm.Conversion.PageCount,
			ConversionTimeMS: fm.Conversion.ConversionTimeMS,
			SourceFile:       fm.Conversion.SourceFile,
			Format:           fm.Conversion.Format,
		},
		Content: yamlContentAnalysis{
			CharCount:         fm.Content.CharCount,
			WordCount:         fm.Content.WordCount,
			AvgWordLength:     fm.Content.AvgWordLength,
			KeywordDensity:    fm.Content.KeywordDensity,
			StructuredDensity: fm.Content.StructuredDensity,
			CategoryHits:      fm.Content.CategoryHits,
			Genre:             fm.Content.Genre,
			HasTables:         fm.Content.HasTables,
			HasImages:         fm.Content.HasImages,
			HasFormulas:       fm.Content.HasFormulas,
			HasCode:           fm.Content.HasCode,
			HasLists:          fm.Content.HasLists,
			HasHeaders:        fm.Content.HasHeaders,
		},
		Processing: yamlProcessing{
			Stage:         fm.Processing.Stage,
			ContentLength: fm.Processing.ContentLength,
		},
		Domain: yamlDomainClassification{
			Routing: yamlRouting{
				Strategy:             fm.Domain.Routing.Strategy,
				PatternSet:           fm.Domain.Routing.PatternSet,
				Confidence:           fm.Domain.Routing.Confidence,
				Reasoning:            fm.Domain.Routing.Reasoning,
				SkipEntityExtraction: fm.Domain.Routing.SkipEntityExtraction,
				EnableDeepExtraction: fm.Domain.Routing.EnableDeepDomainRoute,
				DomainSpecialization: fm.Domain.Routing.DomainSpecialization,
			},
			TopDomains:      fm.Domain.TopDomains,
			TopDocumentType: fm.Domain.TopDocumentType,
			Domains:         fm.Domain.Domains,
			DocumentTypes:   fm.Domain.DocumentTypes,
		},
		RawEntities: buildRawEntities(doc.RawMentions),
		Normalization: yamlNormalization{
			ProcessingTimeMS:  fm.Normalization.ProcessingTimeMS,
			CanonicalEntities: buildCanonicalEntities(doc.Canonical),
		},
		Truncated: fm.Truncated,
	}
	return out
}

// buildRawEntities groups raw mentions by kind label, each mention ordered
// by its first-appearance start offset as required by the ordering
// guarantee in §5.
func buildRawEntities(mentions []document.Mention) map[string][]yamlRawMention {
	if len(mentions) == 0 {
		return map[string][]yamlRawMention{}
	}
	sorted := make([]document.Mention, len(mentions))
	copy(sorted, mentions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Span.Start < sorted[j].Span.Start })

	out := make(map[string][]yamlRawMention)
	for _, m := range sorted {
		label, ok := entityKindLabels[m.Kind]
		if !ok {
			continue
		}
		out[label] = append(out[label], yamlRawMention{
			Text:       m.Surface,
			Span:       yamlSpan{Start: m.Span.Start, End: m.Span.End},
			Confidence: m.Confidence,
			Subtype:    m.Subtype,
			Source:     m.Source,
		})
	}
	return out
}

func buildCanonicalEntities(entities []document.CanonicalEntity) []yamlCanonicalEntity {
	out := make([]yamlCanonicalEntity, 0, len(entities))
	for _, e := range entities {
		mentions := make([]yamlEntityMention, 0, len(e.Mentions))
		sortedMentions := make([]document.Mention, len(e.Mentions))
		copy(sortedMentions, e.Mentions)
		sort.SliceStable(sortedMentions, func(i, j int) bool {
			return sortedMentions[i].Span.Start < sortedMentions[j].Span.Start
		})
		for _, m := range sortedMentions {
			mentions = append(mentions, yamlEntityMention{
				Text: m.Surface,
				Span: yamlSpan{Start: m.Span.Start, End: m.Span.End},
			})
		}
		out = append(out, yamlCanonicalEntity{
			ID:         e.ID,
			Type:       e.Kind.String(),
			Normalized: e.Canonical,
			Aliases:    e.Aliases,
			Count:      e.Count,
			Mentions:   mentions,
			Metadata:   e.Metadata,
		})
	}
	return out
}
