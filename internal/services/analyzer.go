package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"heroic/ats-platform/internal/models"
)

type AnalysisRequest struct {
	FileName        string
	File            []byte
	JobDescription  string
	ExperienceLevel string
	// SessionID keys conversation history; empty starts a new session.
	SessionID string
}

type AnalysisResult struct {
	SessionID string
	Text      string
}

type AnalyzerService interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error)
	ClearMemory(ctx context.Context, sessionID string) error
}

type analyzerService struct {
	pdfParser     PDFParserService
	geminiService GeminiService
	promptBuilder *PromptBuilder
	conversations ConversationStore
	maxAttempts   int
}

func NewAnalyzerService(
	pdfParser PDFParserService,
	geminiService GeminiService,
	promptBuilder *PromptBuilder,
	conversations ConversationStore,
	maxAttempts int,
) AnalyzerService {
	return &analyzerService{
		pdfParser:     pdfParser,
		geminiService: geminiService,
		promptBuilder: promptBuilder,
		conversations: conversations,
		maxAttempts:   maxAttempts,
	}
}

// ValidatePDFFilename accepts any name ending in ".pdf". Content is not
// inspected, so a renamed file passes.
func ValidatePDFFilename(name string) error {
	if !strings.HasSuffix(name, ".pdf") {
		return invalidInput(MsgOnlyPDF)
	}
	return nil
}

func (a *analyzerService) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	if err := ValidatePDFFilename(req.FileName); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, invalidInput("job_description is required")
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	log.Printf("📄 Extracting resume text for session %s (%s, %d bytes)\n", sessionID, req.FileName, len(req.File))
	resumeText, err := a.pdfParser.ExtractText(req.File)
	if err != nil {
		return nil, extractionFailure(err)
	}

	level := NormalizeExperienceLevel(req.ExperienceLevel)
	combinedInput := BuildCombinedInput(resumeText, req.JobDescription, level)

	prompt, err := a.promptBuilder.BuildATSPrompt(combinedInput)
	if err != nil {
		return nil, internalFailure(err)
	}

	history, err := a.conversations.History(ctx, sessionID)
	if err != nil {
		return nil, internalFailure(err)
	}

	log.Printf("🤖 Requesting ATS analysis (session %s, prompt %s, %d prior turns, %d characters)\n",
		sessionID, a.promptBuilder.Version(), len(history), len(prompt))
	response, err := a.geminiService.GenerateTextWithRetry(ctx, history, prompt, a.maxAttempts)
	if err != nil {
		return nil, upstreamFailure(err)
	}

	turn := models.ConversationTurn{Prompt: combinedInput, Response: response}
	if err := a.conversations.Append(ctx, sessionID, turn); err != nil {
		// Best effort: the caller still gets the analysis.
		log.Printf("⚠️  Failed to store conversation turn for session %s: %v\n", sessionID, err)
	}

	log.Printf("✅ ATS analysis completed for session %s: %d characters\n", sessionID, len(response))
	return &AnalysisResult{SessionID: sessionID, Text: response}, nil
}

// ClearMemory clears one session, or every session when sessionID is empty.
func (a *analyzerService) ClearMemory(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		log.Println("🧹 Clearing conversation memory for all sessions")
		if err := a.conversations.ClearAll(ctx); err != nil {
			return internalFailure(err)
		}
		return nil
	}

	log.Printf("🧹 Clearing conversation memory for session %s\n", sessionID)
	if err := a.conversations.Clear(ctx, sessionID); err != nil {
		return internalFailure(err)
	}
	return nil
}
