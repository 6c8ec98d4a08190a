package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/validator"
)

const SystemPrompt = `You are an intelligent AI assistant for an Employee Management System (EMS). 
You help users with HR-related queries, employee management, leave requests, payroll questions, 
and general workplace information. Provide clear, concise, and helpful responses. 
When analyzing images or documents, provide detailed insights relevant to the user's query.`

// FallbackReply is shown in place of an answer when the assistant fails.
const FallbackReply = "I apologize, but I am experiencing some technical difficulties. Please try again later."

// MaxFileSize is the largest accepted attachment in bytes.
const MaxFileSize = 20 << 20

var AllowedFileTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"application/pdf",
	"text/plain",
}

var ErrNoMessages = errors.New("messages are required")

// File is an attachment sent as a base64 data URL.
type File struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.Type, "image/")
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Files   []File `json:"files,omitempty"`
}

type Request struct {
	Messages []Message `json:"messages"`
	Files    []File    `json:"files,omitempty"`
}

func (r *Request) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Messages) == 0 {
		errs.Add("messages", ErrNoMessages.Error())
	}
	for i, m := range r.Messages {
		field := fmt.Sprintf("messages[%d]", i)
		if !validator.IsInSlice(m.Role, []string{"user", "assistant", "system"}) {
			errs.Add(field+".role", "role must be one of: user, assistant, system")
		}
		validateFiles(&errs, field+".files", m.Files)
	}
	validateFiles(&errs, "files", r.Files)

	return errs.Err()
}

func validateFiles(errs *validator.ValidationErrors, field string, files []File) {
	for i, f := range files {
		name := fmt.Sprintf("%s[%d]", field, i)
		if f.Size > MaxFileSize {
			errs.Add(name+".size", fmt.Sprintf("file %s exceeds the 20MB limit", f.Name))
		}
		if !validator.IsInSlice(f.Type, AllowedFileTypes) {
			errs.Add(name+".type", fmt.Sprintf("file type %s is not supported", f.Type))
		}
	}
}

type Response struct {
	GeneratedText string `json:"generatedText"`
}

type Service interface {
	Complete(ctx context.Context, req Request) (Response, error)
}
