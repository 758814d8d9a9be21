package server

import (
	"errors"
	"strings"
	"unicode"

	"musclejourney/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the handler already wrote an error
// response; callers return nil instead of propagating it.
var errResponseWritten = errors.New("response already written")

const maxPaginationLimit = 100

type Pagination struct {
	Limit  int
	Offset int
}

func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Pagination{Limit: limit, Offset: offset}
}

// parseID reads a positive integer route parameter. On failure it writes a
// validation error response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

func humanizeParam(param string) string {
	words := splitCamel(param)
	for i, w := range words {
		if strings.EqualFold(w, "id") {
			words[i] = "ID"
		} else {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}
