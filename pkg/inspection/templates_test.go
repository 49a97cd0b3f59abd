package inspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	content := "Dear ${name}, your ${vehicle} is due for inspection on ${date}."
	params := []TemplateParam{
		{Key: "name", Value: "Maria"},
		{Key: "vehicle", Value: "Toyota Corolla"},
	}

	got := RenderTemplate(content, params)
	assert.Equal(t, "Dear Maria, your Toyota Corolla is due for inspection on ${date}.", got)
}

func TestRenderTemplate_AppliesInOrder(t *testing.T) {
	// Parameters apply in slice order, so a later parameter can touch
	// text produced by an earlier one, but never the other way around.
	content := "${a}"
	params := []TemplateParam{
		{Key: "a", Value: "${b}"},
		{Key: "b", Value: "deep"},
	}
	assert.Equal(t, "deep", RenderTemplate(content, params))

	// Reversed order never revisits earlier substitutions.
	params = []TemplateParam{
		{Key: "b", Value: "deep"},
		{Key: "a", Value: "${b}"},
	}
	assert.Equal(t, "${b}", RenderTemplate(content, params))
}

func TestRenderTemplate_EmptyParams(t *testing.T) {
	assert.Equal(t, "no tokens here", RenderTemplate("no tokens here", nil))
	assert.Equal(t, "${missing}", RenderTemplate("${missing}", []TemplateParam{}))
}

func TestMemoryTemplateStore(t *testing.T) {
	store := NewMemoryTemplateStore()

	require.NoError(t, store.Put("reminder", "Hello ${name}"))
	require.NoError(t, store.Put("result", "Result: ${outcome}"))

	content, err := store.Get("reminder")
	require.NoError(t, err)
	assert.Equal(t, "Hello ${name}", content)

	// Put overwrites.
	require.NoError(t, store.Put("reminder", "Hi ${name}"))
	content, err = store.Get("reminder")
	require.NoError(t, err)
	assert.Equal(t, "Hi ${name}", content)

	ids, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"reminder", "result"}, ids)

	require.NoError(t, store.Delete("reminder"))
	_, err = store.Get("reminder")
	require.ErrorIs(t, err, ErrTemplateNotFound)
	require.ErrorIs(t, err, ErrNotFound)

	err = store.Delete("reminder")
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestDBTemplateStore(t *testing.T) {
	store := NewDBTemplateStore(newTestDB(t))

	require.NoError(t, store.Put("expiry", "Your ${document} expires on ${date}"))

	content, err := store.Get("expiry")
	require.NoError(t, err)
	assert.Equal(t, "Your ${document} expires on ${date}", content)

	// Upsert replaces the content under the same ID.
	require.NoError(t, store.Put("expiry", "Expires: ${date}"))
	content, err = store.Get("expiry")
	require.NoError(t, err)
	assert.Equal(t, "Expires: ${date}", content)

	require.NoError(t, store.Put("welcome", "Welcome ${name}"))
	ids, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"expiry", "welcome"}, ids)

	require.NoError(t, store.Delete("expiry"))
	_, err = store.Get("expiry")
	require.ErrorIs(t, err, ErrTemplateNotFound)

	err = store.Delete("expiry")
	require.ErrorIs(t, err, ErrTemplateNotFound)
}
