package templates

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/storage"
	"github.com/jonathan/resume-tailor/internal/types"
)

func TestDefaults_CoverBothDocumentTypes(t *testing.T) {
	defaults := Defaults()
	require.NotEmpty(t, defaults)

	byType := make(map[types.DocumentType]int)
	defaultsByType := make(map[types.DocumentType]int)
	for _, tpl := range defaults {
		byType[tpl.DocumentType]++
		if tpl.IsDefault {
			defaultsByType[tpl.DocumentType]++
		}
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Content)
	}

	assert.Positive(t, byType[types.DocumentTypeCV])
	assert.Positive(t, byType[types.DocumentTypeCover])
	assert.Equal(t, 1, defaultsByType[types.DocumentTypeCV])
	assert.Equal(t, 1, defaultsByType[types.DocumentTypeCover])
}

func TestSeed_EmptyStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStorage()

	created, err := Seed(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, len(Defaults()), created)

	all, err := store.ListTemplates(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, created)
}

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStorage()

	_, err := Seed(ctx, store)
	require.NoError(t, err)

	created, err := Seed(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestSeed_SkipsPopulatedDocumentType(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemStorage()

	_, err := store.CreateTemplate(ctx, storage.NewTemplate{
		Name: "Custom CV", DocumentType: types.DocumentTypeCV, Content: "{{name}}",
	})
	require.NoError(t, err)

	created, err := Seed(ctx, store)
	require.NoError(t, err)

	cvType := types.DocumentTypeCV
	cvs, err := store.ListTemplates(ctx, &cvType)
	require.NoError(t, err)
	assert.Len(t, cvs, 1)

	coverType := types.DocumentTypeCover
	covers, err := store.ListTemplates(ctx, &coverType)
	require.NoError(t, err)
	assert.Len(t, covers, created)
}
