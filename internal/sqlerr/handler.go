package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/news-api/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Key (author)=(nobody) is not present in table "users".
	detailKeyPattern = regexp.MustCompile(`^Key \(([^)]+)\)=`)
	uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
)

// ConvertPgError converts a pgconn.PgError into our custom sqlerr.Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		Detail:         src.Detail,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates a logged application code like USER_NOT_FOUND.
func generateErrorCode(entity string, errType Code) string {
	if entity == "" {
		entity = "RECORD"
	}

	domain := strings.ToUpper(entity)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextRepresentation, NumericValueOutOfRange, StringDataRightTruncation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatFieldMessage produces the human readable text logged with a 400.
func formatFieldMessage(sqlErr *Error) string {
	fieldName := humanizeText(sqlErr.ColumnName)
	if fieldName == "" {
		fieldName = "Value"
	}

	switch sqlErr.Code {
	case UniqueViolation:
		return fmt.Sprintf("A %s with this %s already exists", singular(sqlErr.TableName), fieldName)
	case NotNullViolation:
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation:
		return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
	default:
		return sqlErr.Message
	}
}

func singular(table string) string {
	if table == "" {
		return "record"
	}
	if strings.HasSuffix(table, "s") && len(table) > 1 {
		return table[:len(table)-1]
	}
	return table
}

// humanizeText converts snake_case into Title Case.
//
// Example:
//
//	"article_img_url" -> "Article Img Url"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// foreignKeyColumn finds the referencing column of a foreign key violation,
// first from the error detail and then from a "<table>_<column>_fkey"
// constraint name.
func foreignKeyColumn(sqlErr *Error) string {
	if m := detailKeyPattern.FindStringSubmatch(sqlErr.Detail); m != nil {
		return m[1]
	}

	name := strings.TrimSuffix(sqlErr.ConstraintName, "_fkey")
	if name == sqlErr.ConstraintName {
		return ""
	}
	if sqlErr.TableName != "" {
		name = strings.TrimPrefix(name, sqlErr.TableName+"_")
	}
	return name
}

// referencedEntity names what a foreign key column points at.
func referencedEntity(column string) string {
	switch column {
	case "author", "username", "created_by":
		return "user"
	case "topic", "slug":
		return "topic"
	}
	if strings.HasSuffix(column, "_id") {
		return strings.TrimSuffix(column, "_id")
	}
	return column
}

// notFoundMessage picks the client message for a missing referenced row.
func notFoundMessage(column string) string {
	switch referencedEntity(column) {
	case "user":
		return errs.MsgUsernameNotFound
	case "topic":
		return errs.MsgTopicNotFound
	}
	if column == "" || strings.HasSuffix(column, "_id") {
		return errs.MsgIDNotFound
	}
	return fmt.Sprintf("%s not found", strings.ReplaceAll(column, "_", " "))
}

func extractColumnForUniqueViolation(constraintName string) string {
	if m := uniqueKeyPattern.FindStringSubmatch(constraintName); len(m) > 1 {
		return m[1]
	}
	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - 22P02 / 22003 / 22001: 400 "bad request"
//   - 23503 foreign key violation: 404 "<entity> not found"
//   - 23502 / 23505 / 23514: 400 "bad request" with a field error
//   - pgx.ErrNoRows: 404 "id not found"
//   - anything else: 500 "internal server error"
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		switch sqlErr.Code {
		case InvalidTextRepresentation, NumericValueOutOfRange, StringDataRightTruncation:
			code := generateErrorCode(sqlErr.DataTypeName, sqlErr.Code)
			return errs.NewBadRequestError(errs.MsgBadRequest, &code, nil)

		case ForeignKeyViolation:
			column := foreignKeyColumn(sqlErr)
			code := generateErrorCode(referencedEntity(column), sqlErr.Code)
			return errs.NewNotFoundError(notFoundMessage(column), &code)

		case UniqueViolation, NotNullViolation, CheckViolation:
			column := sqlErr.ColumnName
			if column == "" && sqlErr.Code == UniqueViolation {
				column = extractColumnForUniqueViolation(sqlErr.ConstraintName)
				sqlErr.ColumnName = column
			}
			code := generateErrorCode(sqlErr.TableName, sqlErr.Code)
			fieldErrors := []errs.FieldError{{
				Field: strings.ToLower(column),
				Error: formatFieldMessage(sqlErr),
			}}
			return errs.NewBadRequestError(errs.MsgBadRequest, &code, fieldErrors)

		default:
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.IDNotFound()
	}

	return errs.NewInternalServerError()
}
