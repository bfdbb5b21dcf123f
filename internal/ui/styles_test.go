package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmouel/lazyscm/internal/theme"
)

func TestPlainNotice(t *testing.T) {
	s := NewStyles(theme.Get(theme.NordName), true)

	assert.Equal(t, "warning: careful", s.Notice(SeverityWarning, "careful", 80, true))
	assert.Equal(t, "error: bad", s.Notice(SeverityError, "bad", 0, false))
	assert.Equal(t, "x", s.Muted("x"))
	assert.Equal(t, "x", s.Accent("x"))
}

func TestStyledModalNoticeIsBoxed(t *testing.T) {
	s := NewStyles(theme.Get(theme.NordName), false)

	out := s.Notice(SeverityInfo, "hello", 80, true)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "╭")
}
