package artifacts

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeUploadAPI struct {
	keys []string
	err  error
}

func (f *fakeUploadAPI) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.keys = append(f.keys, *input.Key)
	return &manager.UploadOutput{}, nil
}

func TestUploadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arch.png")
	if err := os.WriteFile(path, []byte("png bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeUploadAPI{}
	u := &Uploader{api: fake, bucket: "diagrams", prefix: "runs/"}

	uri, err := u.UploadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != "s3://diagrams/runs/arch.png" {
		t.Errorf("unexpected URI %q", uri)
	}
	if len(fake.keys) != 1 || fake.keys[0] != "runs/arch.png" {
		t.Errorf("unexpected keys %v", fake.keys)
	}
}

func TestUploadFile_Missing(t *testing.T) {
	u := &Uploader{api: &fakeUploadAPI{}, bucket: "diagrams"}
	if _, err := u.UploadFile(context.Background(), "/nonexistent/arch.png"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestUploadDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	fake := &fakeUploadAPI{}
	u := &Uploader{api: fake, bucket: "diagrams"}

	uris, err := u.UploadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(uris) != 2 {
		t.Errorf("expected 2 uploads, got %v", uris)
	}
}

func TestUploadDir_MissingDirIsNotAnError(t *testing.T) {
	u := &Uploader{api: &fakeUploadAPI{}, bucket: "diagrams"}
	uris, err := u.UploadDir(context.Background(), "/nonexistent/diagrams")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uris != nil {
		t.Errorf("expected no uploads, got %v", uris)
	}
}
