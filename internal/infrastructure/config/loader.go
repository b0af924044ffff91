package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	cfgpkg "github.com/alexisbeaulieu97/tokenkit/internal/config"
	"github.com/alexisbeaulieu97/tokenkit/internal/logger"
	"github.com/alexisbeaulieu97/tokenkit/internal/tokens"
	tokenerrors "github.com/alexisbeaulieu97/tokenkit/pkg/errors"
)

// ErrorCode classifies document loading failures.
type ErrorCode string

const (
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeSyntax     ErrorCode = "SYNTAX_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeCancelled  ErrorCode = "CANCELLED"
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
)

// LoadError is a classified document loading failure.
type LoadError struct {
	Code    ErrorCode
	Message string
	Path    string
	Cause   error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is / errors.As usage.
func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// DocumentLoader reads token documents from disk with logging and error classification.
type DocumentLoader struct {
	logger *logger.Logger
}

// NewDocumentLoader creates a loader. A nil logger discards output.
func NewDocumentLoader(log *logger.Logger) *DocumentLoader {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentLoader{logger: log}
}

// Load parses the document at path.
func (l *DocumentLoader) Load(ctx context.Context, path string) (*tokens.Document, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	log := l.logger.With("path", path)
	log.Debug("loading token document")

	doc, err := cfgpkg.ParseDocument(path)
	if err != nil {
		converted := convertError(err, path)
		log.Error(err, "failed to parse token document")
		return nil, converted
	}

	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	log.WithFields(map[string]any{
		"tokens": doc.Global.CountLeaves(),
		"themes": len(doc.ThemeNames()),
	}).Info("token document loaded")
	return doc, nil
}

// Validate loads the document at path and analyses its references.
func (l *DocumentLoader) Validate(ctx context.Context, path string) (tokens.Report, error) {
	if err := contextCheck(ctx); err != nil {
		return tokens.Report{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		l.logger.With("path", path).Error(err, "token document stat failed")
		return tokens.Report{}, convertError(err, path)
	}
	if info.IsDir() {
		return tokens.Report{}, &LoadError{Code: ErrCodeValidation, Message: "token document path is a directory", Path: path}
	}
	if _, ok := cfgpkg.FormatFromPath(path); !ok {
		return tokens.Report{}, &LoadError{Code: ErrCodeValidation, Message: "unsupported token document extension", Path: path}
	}

	doc, err := l.Load(ctx, path)
	if err != nil {
		return tokens.Report{}, err
	}

	report := tokens.Analyze(doc)
	log := l.logger.With("path", path)
	for _, cycle := range report.Cycles {
		log.With("cycle", cycle).Warn("cyclic token reference")
	}
	for _, issue := range report.Dangling {
		log.WithFields(map[string]any{"tree": issue.Tree, "token": issue.Token, "reference": issue.Reference}).Warn("dangling token reference")
	}
	for _, issue := range report.Shadowed {
		log.WithFields(map[string]any{"tree": issue.Tree, "token": issue.Token, "reference": issue.Reference}).Debug("theme reference resolves against the global tree")
	}
	return report, nil
}

func convertError(err error, path string) error {
	if err == nil {
		return nil
	}
	var parseErr *tokenerrors.ParseError
	if errors.As(err, &parseErr) {
		if errors.Is(parseErr.Err, os.ErrNotExist) {
			return &LoadError{Code: ErrCodeNotFound, Message: "token document not found", Path: path, Cause: parseErr.Err}
		}
		return &LoadError{Code: ErrCodeSyntax, Message: "invalid token document syntax", Path: path, Cause: err}
	}
	var valErr *tokenerrors.ValidationError
	if errors.As(err, &valErr) {
		return &LoadError{Code: ErrCodeValidation, Message: "invalid token document", Path: path, Cause: err}
	}
	if errors.Is(err, os.ErrNotExist) {
		return &LoadError{Code: ErrCodeNotFound, Message: "token document not found", Path: path, Cause: err}
	}
	return &LoadError{Code: ErrCodeInternal, Message: "token document load failed", Path: path, Cause: err}
}

func contextCheck(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return &LoadError{Code: ErrCodeCancelled, Message: "operation cancelled", Cause: err}
	}
	return nil
}
