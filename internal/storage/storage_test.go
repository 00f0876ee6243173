package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)

	name := FileName("My Dog Photo (Final Version).JPG", now)
	assert.Regexp(t, regexp.MustCompile(`^20240309-[0-9a-f]{8}-my-dog-photo-final-v\.jpg$`), name)

	assert.Regexp(t, `^20240309-[0-9a-f]{8}-image$`, FileName("", now))
	assert.Regexp(t, `^20240309-[0-9a-f]{8}-passwd$`, FileName("../../etc/passwd", now))
}

func TestLocalSaveURLDelete(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, l.Save(ctx, "a.png", "image/png", bytes.NewBufferString("png-bytes")))

	raw, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(raw))
	assert.Equal(t, "http://localhost:8080/uploads/a.png", l.URL("a.png"))

	require.NoError(t, l.Delete(ctx, "a.png"))
	_, err = os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, l.Delete(ctx, "a.png"))
}

func TestLocalKeyCannotEscapeDir(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(filepath.Join(dir, "uploads"), "http://x")
	require.NoError(t, err)

	require.NoError(t, l.Save(context.Background(), "../escape.txt", "text/plain", bytes.NewBufferString("x")))
	_, err = os.Stat(filepath.Join(dir, "uploads", "escape.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

type fakeS3 struct {
	puts    map[string][]byte
	deleted []string
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(in.Body)
	f.puts[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3PrefixesKeys(t *testing.T) {
	fake := &fakeS3{puts: map[string][]byte{}}
	s := &S3{client: fake, bucket: "patinhas", region: "sa-east-1"}

	require.NoError(t, s.Save(context.Background(), "x.jpg", "image/jpeg", bytes.NewBufferString("jpg")))
	assert.Equal(t, []byte("jpg"), fake.puts["pets/x.jpg"])
	assert.Equal(t, "https://patinhas.s3.sa-east-1.amazonaws.com/pets/x.jpg", s.URL("x.jpg"))

	require.NoError(t, s.Delete(context.Background(), "x.jpg"))
	assert.Equal(t, []string{"pets/x.jpg"}, fake.deleted)
}
