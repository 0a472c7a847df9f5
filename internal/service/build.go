package service

import (
	"encoding/base64"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/models"
)

func (s *AnalyzeService) buildOpenAIReq(req *models.AnalyzeRequest) (*openai.ChatCompletionNewParams, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return &openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(s.modelName),
		Messages: buildImageMessages(req),
	}, nil
}

func buildImageMessages(req *models.AnalyzeRequest) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPromptStylist),
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(fmt.Sprintf(userPromptTemplate, req.FileName)),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: imageDataURL(req),
			}),
		}),
	}
}

func imageDataURL(req *models.AnalyzeRequest) string {
	return fmt.Sprintf("data:%s;base64,%s", req.MediaType, base64.StdEncoding.EncodeToString(req.Data))
}
