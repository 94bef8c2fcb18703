package atomicfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/kjk/agenda/require"
)

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

func TestSimulateError(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "appointments.json")
	f, err := New(dst)
	require.NoError(t, err)
	assert.True(t, fileExists(f.tmpPath))
	_, err = f.Write([]byte("[]"))
	require.NoError(t, err)

	errSimulated := errors.New("simulated")
	f.err = errSimulated
	assert.Equal(t, errSimulated, f.Close())
	assert.False(t, fileExists(f.tmpPath))
	assert.False(t, fileExists(dst))
	// second Close() returns the same error
	assert.Equal(t, errSimulated, f.Close())
}

func writeAndPanic(t *testing.T, f *File, cancel bool) {
	if cancel {
		defer f.RemoveIfNotClosed()
	} else {
		defer f.Close()
	}
	_, err := f.Write([]byte("[]"))
	require.NoError(t, err)
	panic("simulating a crash")
}

func recoverPanic(t *testing.T, f *File, cancel bool) {
	defer func() {
		assert.NotNil(t, recover(), "expected to panic")
	}()
	writeAndPanic(t, f, cancel)
}

func TestWriteWithPanic(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "appointments.json")
	f, err := New(dst)
	require.NoError(t, err)
	recoverPanic(t, f, false)
	// deferred Close() commits what was written
	assert.True(t, fileExists(dst))
}

func TestCancel(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "appointments.json")
	f, err := New(dst)
	require.NoError(t, err)
	recoverPanic(t, f, true)
	assert.False(t, fileExists(f.tmpPath))
	assert.False(t, fileExists(dst))

	f, err = New(dst)
	require.NoError(t, err)
	f.RemoveIfNotClosed()
	_, err = f.Write([]byte("x"))
	assert.Equal(t, ErrCancelled, err)
	assert.Equal(t, ErrCancelled, f.Close())
	assert.Equal(t, ErrCancelled, f.Close())
}

func TestEarlyReturnKeepsDestination(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "appointments.json")
	require.NoError(t, WriteFile(dst, []byte("[]")))

	errStop := errors.New("stop")
	var tmpPath string
	write := func() error {
		f, err := New(dst)
		if err != nil {
			return err
		}
		defer f.RemoveIfNotClosed()
		tmpPath = f.tmpPath
		if _, err = f.Write([]byte(`[{"id":`)); err != nil {
			return err
		}
		return errStop
	}
	assert.Equal(t, errStop, write())
	assert.False(t, fileExists(tmpPath))
	d, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(d))
}

func TestWriteFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "appointments.json")
	require.NoError(t, WriteFile(dst, []byte(`[{"id":"1"}]`)))
	d, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(d))

	// overwrites
	require.NoError(t, WriteFile(dst, []byte("[]")))
	d, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(d))

	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files left behind")
}

func TestCloseTwice(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "empty.json")
	f, err := New(dst)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, fileExists(dst))
	assert.NoError(t, f.Close())
}

func TestMissingDir(t *testing.T) {
	// fail at New() rather than at rename time
	dst := filepath.Join(t.TempDir(), "foo", "bar.json")
	f, err := New(dst)
	assert.Error(t, err)
	assert.True(t, f == nil)
	assert.Error(t, WriteFile(dst, []byte("[]")))
}
