package proofstore

import (
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpen(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	clinicID := uuid.New()
	content := "receipt bytes"

	ref, err := store.Save(clinicID, "receipt.png", int64(len(content)), strings.NewReader(content))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, clinicID.String()+"/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	rc, err := store.Open(ref)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestSaveRejectsBadUploads(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(uuid.New(), "script.exe", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = store.Save(uuid.New(), "huge.pdf", maxProofSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestOpenRejectsTraversal(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	for _, ref := range []string{"", "../outside.pdf", "a/../../etc/passwd"} {
		_, err := store.Open(ref)
		assert.ErrorIs(t, err, ErrReferenceInvalid, "ref %q", ref)
	}
}

func TestDelete(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	ref, err := store.Save(uuid.New(), "receipt.pdf", 4, strings.NewReader("data"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ref))

	_, err = store.Open(ref)
	assert.ErrorIs(t, err, ErrReferenceInvalid)
}
