package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type kindedErr struct {
	kind ErrorKind
	msg  string
}

func (e *kindedErr) Error() string   { return "full: " + e.msg }
func (e *kindedErr) Kind() ErrorKind { return e.kind }
func (e *kindedErr) Message() string { return e.msg }

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKindNone, KindOf(nil))
	assert.Equal(t, ErrorKindUnexpected, KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKindService, KindOf(&kindedErr{kind: ErrorKindService}))
	assert.Equal(t, ErrorKindConnection, KindOf(fmt.Errorf("wrapped: %w", &kindedErr{kind: ErrorKindConnection})))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Equal(t, "short", UserMessage(fmt.Errorf("ctx: %w", &kindedErr{msg: "short"})))
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "connection", ErrorKindConnection.String())
	assert.Equal(t, "service", ErrorKindService.String())
	assert.Equal(t, "unexpected", ErrorKindUnexpected.String())
	assert.Equal(t, "unknown", ErrorKind(42).String())
}

func TestModelList(t *testing.T) {
	var nilList *ModelList
	assert.True(t, nilList.IsEmpty())
	assert.Zero(t, nilList.Len())

	list := &ModelList{Models: []ModelRecord{{Name: "llama3:8b"}}}
	assert.False(t, list.IsEmpty())
	assert.Equal(t, 1, list.Len())
}

func TestModelRecord_ModifiedTime(t *testing.T) {
	ts, ok := ModelRecord{Modified: "2024-05-01T10:00:00Z"}.ModifiedTime()
	assert.True(t, ok)
	assert.Equal(t, 2024, ts.Year())

	_, ok = ModelRecord{Modified: "2024-06-02T08:30:00.123456789+10:00"}.ModifiedTime()
	assert.True(t, ok)

	_, ok = ModelRecord{Modified: UnknownField}.ModifiedTime()
	assert.False(t, ok)

	_, ok = ModelRecord{Modified: "yesterday"}.ModifiedTime()
	assert.False(t, ok)
}
