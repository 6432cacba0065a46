package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"lingua-tutor/internal/domain"
	"lingua-tutor/internal/dto"
	"lingua-tutor/internal/logger"

	"go.uber.org/zap"
)

const handwritingPromptTemplate = `この手書きの中国語文字を認識し、正解「%s」と比較して採点してください。

回答形式:
- 認識結果: [認識した文字]
- 正誤判定: [正解/不正解]
- フィードバック: [詳細なコメント]
`

const writingPromptTemplate = `以下の中国語の作文を添削してください。

学生の回答:
%s

%s
以下の観点で評価してください:
1. 文法の正確性
2. 語彙の適切性
3. より自然な表現の提案
4. 総合的なフィードバック

JSON形式で返答してください:
{
    "grammar_score": 0-100,
    "vocabulary_score": 0-100,
    "suggestions": ["提案1", "提案2"],
    "feedback": "総合的なコメント"
}
`

// ScoringService grades student submissions. Sorting is deterministic and
// synchronous; handwriting and free-text writing delegate to the external
// model through the job registry.
type ScoringService interface {
	ScoreSorting(ctx context.Context, sub dto.SortingSubmission) *dto.SortingResult
	SubmitHandwriting(ctx context.Context, sub dto.HandwritingSubmission) (*dto.AsyncAccepted, error)
	SubmitWriting(ctx context.Context, sub dto.WritingSubmission) (*dto.AsyncAccepted, error)
	GetResult(ctx context.Context, taskID string) (domain.ScoringJob, bool)
}

type scoringServiceImpl struct {
	gateway  domain.ModelGateway
	registry *JobRegistry
}

// NewScoringService creates a new ScoringService. gateway may be nil when
// the external model is not configured; async submissions then fail with
// an availability error while sorting keeps working.
func NewScoringService(gateway domain.ModelGateway, registry *JobRegistry) ScoringService {
	return &scoringServiceImpl{gateway: gateway, registry: registry}
}

// ScoreSorting compares the submitted sequence element-wise, order
// included. When wrong, the expected order is rendered as guidance.
func (s *scoringServiceImpl) ScoreSorting(ctx context.Context, sub dto.SortingSubmission) *dto.SortingResult {
	isCorrect := len(sub.Words) == len(sub.ExpectedOrder)
	if isCorrect {
		for i := range sub.Words {
			if sub.Words[i] != sub.ExpectedOrder[i] {
				isCorrect = false
				break
			}
		}
	}
	feedback := ""
	if !isCorrect {
		feedback = "正しい順序: " + strings.Join(sub.ExpectedOrder, " → ")
	}
	return &dto.SortingResult{
		QuestionID:    sub.QuestionID,
		IsCorrect:     isCorrect,
		UserOrder:     sub.Words,
		ExpectedOrder: sub.ExpectedOrder,
		Feedback:      feedback,
	}
}

// SubmitHandwriting decodes the image, registers an async job and returns
// its handle immediately.
func (s *scoringServiceImpl) SubmitHandwriting(ctx context.Context, sub dto.HandwritingSubmission) (*dto.AsyncAccepted, error) {
	if s.gateway == nil {
		return nil, domain.NewUnavailableError("外部モデルが設定されていません")
	}
	image, err := decodeImageData(sub.ImageData)
	if err != nil {
		return nil, domain.NewInvalidInputError("画像データを読み込めません")
	}
	mimeType := http.DetectContentType(image)
	prompt := fmt.Sprintf(handwritingPromptTemplate, sub.ExpectedAnswer)

	taskID := s.registry.Submit(domain.JobKindHandwriting, sub.QuestionID, func(ctx context.Context) (JobResult, error) {
		text, err := s.gateway.GenerateFromImage(ctx, prompt, image, mimeType)
		if err != nil {
			return JobResult{}, err
		}
		return JobResult{RecognizedText: text}, nil
	})

	logger.Get().Info("Handwriting scoring submitted",
		zap.String("task_id", taskID),
		zap.String("question_id", sub.QuestionID))
	return &dto.AsyncAccepted{TaskID: taskID, Status: string(domain.JobProcessing)}, nil
}

// SubmitWriting registers an async free-text grading job. The model's
// embedded JSON block is extracted best-effort; an unparsable response
// degrades to a raw_feedback field, never to a failure.
func (s *scoringServiceImpl) SubmitWriting(ctx context.Context, sub dto.WritingSubmission) (*dto.AsyncAccepted, error) {
	if s.gateway == nil {
		return nil, domain.NewUnavailableError("外部モデルが設定されていません")
	}
	reference := ""
	if sub.ExpectedAnswer != "" {
		reference = fmt.Sprintf("期待される回答の参考: %s\n", sub.ExpectedAnswer)
	}
	prompt := fmt.Sprintf(writingPromptTemplate, sub.Text, reference)

	taskID := s.registry.Submit(domain.JobKindWriting, sub.QuestionID, func(ctx context.Context) (JobResult, error) {
		text, err := s.gateway.GenerateText(ctx, prompt)
		if err != nil {
			return JobResult{}, err
		}
		return JobResult{Result: extractResultJSON(text)}, nil
	})

	logger.Get().Info("Writing scoring submitted",
		zap.String("task_id", taskID),
		zap.String("question_id", sub.QuestionID))
	return &dto.AsyncAccepted{TaskID: taskID, Status: string(domain.JobProcessing)}, nil
}

func (s *scoringServiceImpl) GetResult(ctx context.Context, taskID string) (domain.ScoringJob, bool) {
	return s.registry.Poll(taskID)
}

// decodeImageData decodes base64 image data, tolerating a data-URL prefix.
func decodeImageData(data string) ([]byte, error) {
	if idx := strings.LastIndex(data, ","); idx != -1 {
		data = data[idx+1:]
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimSpace(data))
	}
	if err != nil {
		return nil, err
	}
	if len(decoded) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	return decoded, nil
}

// extractResultJSON locates the outermost JSON object in the model
// response. No parse means the raw text is kept as unstructured feedback.
func extractResultJSON(text string) interface{} {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		var parsed map[string]interface{}
		if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err == nil {
			return parsed
		}
	}
	return map[string]interface{}{"raw_feedback": text}
}
