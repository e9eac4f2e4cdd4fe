package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/planetaketo/forum-service/internal/models"
)

// Store wraps the content database. All user-supplied values reach the
// database through bound parameters, never through string interpolation.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

var (
	ErrNotFound      = errors.New("documento no encontrado")
	ErrNotOwner      = errors.New("no autorizado para modificar este contenido")
	ErrPostLocked    = errors.New("la publicación está bloqueada")
	ErrInvalidAction = errors.New("acción de moderación no válida")
	ErrNeedsContent  = errors.New("la acción de edición requiere contenido adicional")
)

// ValidationError carries the user-facing message for a rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Kind identifies a moderatable content type. Every document ID carries its
// kind as a prefix (e.g. forumPost_3f1c...), so an opaque ID resolves to its
// kind without probing the database.
type Kind string

const (
	KindForumPost     Kind = "forumPost"
	KindForumComment  Kind = "forumComment"
	KindForumReply    Kind = "forumReply"
	KindRecipeComment Kind = "recipeComment"
	KindBlogComment   Kind = "blogComment"
)

func newID(kind Kind) string {
	return string(kind) + "_" + uuid.NewString()
}

// Placeholders written over soft-deleted content.
const (
	deletedPostPlaceholder    = "[Publicación eliminada]"
	deletedCommentPlaceholder = "[Comentario eliminado]"
	deletedReplyPlaceholder   = "[Respuesta eliminada]"
	moderatedPlaceholder      = "[Contenido eliminado por moderación]"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return invalid("authorEmail", "El correo electrónico no es válido")
	}
	return nil
}

func validateLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min || n > max {
		return invalid(field, fmt.Sprintf("El campo %s debe tener entre %d y %d caracteres", field, min, max))
	}
	return nil
}

func validateAuthor(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("authorName", "El nombre del autor es obligatorio")
	}
	return validateEmail(email)
}

func maxLimit(limit *int, def, max int) {
	if *limit <= 0 {
		*limit = def
	}
	if *limit > max {
		*limit = max
	}
}

// bestEffort logs a secondary failure without surfacing it; a counter that
// failed to update after a successful mutation is rebuilt by reconciliation.
func (s *Store) bestEffort(op string, err error, fields ...zap.Field) {
	if err != nil {
		s.logger.Warn(op, append(fields, zap.Error(err))...)
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// resyncReplyCount rewrites the post's denormalized reply counter from the
// true count of its non-deleted comments and replies.
func (s *Store) resyncReplyCount(ctx context.Context, postID string) error {
	var comments, replies int64
	if err := s.db.WithContext(ctx).Model(&models.ForumComment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&comments).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&models.ForumReply{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&replies).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("id = ?", postID).
		UpdateColumn("reply_count", comments+replies).Error
}
