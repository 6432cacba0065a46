package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"

	"go.uber.org/zap"
)

const (
	// Upload kinds accepted by the ingestion path.
	IngestKindWord    = "word"
	IngestKindGrammar = "grammar"
)

const wordExtractionPrompt = `この画像から「新しい単語（生詞）」を抽出して。
以下のJSONリスト形式だけで返して。
[{"word": "単語", "pinyin": "ピンイン", "meaning": "意味"}]
`

const grammarExtractionPrompt = `この画像から「文法解説（Grammar）」を抽出して。
以下のJSONリスト形式だけで返して。
[
    {
        "title": "文法項目名（例: 是構文）",
        "description": "解説文",
        "example_cn": "例文(中国語)",
        "example_jp": "例文(日本語)"
    }
]
`

// extractedWord and extractedGrammar are the list-of-records shapes the
// model is asked to produce. Absent fields default at construction time.
type extractedWord struct {
	Word    string `json:"word"`
	Pinyin  string `json:"pinyin"`
	Meaning string `json:"meaning"`
}

type extractedGrammar struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ExampleCN   string `json:"example_cn"`
	ExampleJP   string `json:"example_jp"`
}

// IngestService turns an uploaded textbook page into persisted vocabulary
// or grammar entries owned by the uploading user.
type IngestService interface {
	IngestTextbook(ctx context.Context, image []byte, lesson int, kind, userID string) (*dto.UploadResponse, error)
}

type ingestServiceImpl struct {
	gateway     domain.ModelGateway
	wordRepo    domain.WordRepository
	grammarRepo domain.GrammarRepository
}

// NewIngestService creates a new IngestService. gateway may be nil when
// the external model is not configured.
func NewIngestService(gateway domain.ModelGateway, wordRepo domain.WordRepository, grammarRepo domain.GrammarRepository) IngestService {
	return &ingestServiceImpl{gateway: gateway, wordRepo: wordRepo, grammarRepo: grammarRepo}
}

func (s *ingestServiceImpl) IngestTextbook(ctx context.Context, image []byte, lesson int, kind, userID string) (*dto.UploadResponse, error) {
	appLogger := logger.Get()

	if s.gateway == nil {
		return nil, domain.NewUnavailableError("外部モデルが設定されていません")
	}
	if len(image) == 0 {
		return nil, domain.NewInvalidInputError("画像ファイルが空です")
	}
	// Anything that is not explicitly a word upload is a grammar upload.
	if kind != IngestKindWord {
		kind = IngestKindGrammar
	}

	prompt := wordExtractionPrompt
	if kind == IngestKindGrammar {
		prompt = grammarExtractionPrompt
	}

	appLogger.Info("Textbook page received",
		zap.String("kind", kind),
		zap.Int("lesson", lesson),
		zap.String("user_id", userID),
		zap.Int("image_bytes", len(image)))

	raw, err := s.gateway.GenerateFromImage(ctx, prompt, image, http.DetectContentType(image))
	if err != nil {
		return nil, err
	}

	// Models like to wrap their output in code fences.
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var count int
	var data interface{}
	switch kind {
	case IngestKindGrammar:
		var extracted []extractedGrammar
		if err := json.Unmarshal([]byte(cleaned), &extracted); err != nil {
			return nil, domain.NewBadUpstreamResponseError(
				fmt.Sprintf("モデル応答を解析できません: %s", truncate(cleaned, 200)), err)
		}
		entries := make([]domain.GrammarEntry, 0, len(extracted))
		for _, g := range extracted {
			if g.Title == "" {
				g.Title = "無題"
			}
			entries = append(entries, domain.GrammarEntry{
				UserID:        userID,
				Lesson:        lesson,
				Title:         g.Title,
				Description:   g.Description,
				ExampleSource: g.ExampleCN,
				ExampleTarget: g.ExampleJP,
			})
		}
		if err := s.grammarRepo.InsertGrammar(ctx, entries); err != nil {
			return nil, domain.NewInternalError("failed to persist grammar entries", err)
		}
		count, data = len(extracted), extracted
	default:
		var extracted []extractedWord
		if err := json.Unmarshal([]byte(cleaned), &extracted); err != nil {
			return nil, domain.NewBadUpstreamResponseError(
				fmt.Sprintf("モデル応答を解析できません: %s", truncate(cleaned, 200)), err)
		}
		entries := make([]domain.VocabularyEntry, 0, len(extracted))
		for _, w := range extracted {
			entries = append(entries, domain.VocabularyEntry{
				UserID:  userID,
				Lesson:  lesson,
				Word:    w.Word,
				Pinyin:  w.Pinyin,
				Meaning: w.Meaning,
			})
		}
		if err := s.wordRepo.InsertWords(ctx, entries); err != nil {
			return nil, domain.NewInternalError("failed to persist word entries", err)
		}
		count, data = len(extracted), extracted
	}

	message := fmt.Sprintf("単語 %d個を保存完了！", count)
	if kind == IngestKindGrammar {
		message = fmt.Sprintf("文法 %d個を保存完了！", count)
	}
	appLogger.Info("Textbook page ingested",
		zap.String("kind", kind),
		zap.Int("lesson", lesson),
		zap.Int("count", count))

	return &dto.UploadResponse{
		Status:  "success",
		Message: message,
		Data:    data,
		Lesson:  lesson,
		Type:    kind,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
