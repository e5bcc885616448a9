package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"pdfintake/upload-service/pkg/logger"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePut struct {
	inputs  []*s3.PutObjectInput
	bodies  []string
	failKey string // key whose PutObject call should fail
}

func (f *fakePut) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, _ := io.ReadAll(params.Body)
	f.inputs = append(f.inputs, params)
	f.bodies = append(f.bodies, string(body))
	if f.failKey != "" && *params.Key == f.failKey {
		return nil, errors.New("connection reset")
	}
	return &s3.PutObjectOutput{}, nil
}

type fakePresign struct {
	url  string
	err  error
	keys []string
}

func (f *fakePresign) PresignGetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.keys = append(f.keys, *params.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: f.url}, nil
}

func newTestS3Store(put *fakePut, presign *fakePresign) *s3Store {
	return &s3Store{
		client:        put,
		presignClient: presign,
		bucket:        "intake-bucket",
		log:           logger.NewNop(),
	}
}

func TestS3StorePersist(t *testing.T) {
	put := &fakePut{}
	presign := &fakePresign{url: "https://intake-bucket.s3.example/signed"}
	store := newTestS3Store(put, presign)

	meta := []byte("id=abc\nname=Jane\n")
	loc, err := store.Persist(context.Background(), "abc", ".pdf", strings.NewReader("%PDF-1.4"), meta)
	require.NoError(t, err)

	assert.Equal(t, ModeS3, loc.Mode)
	assert.Equal(t, "intake-bucket", loc.Bucket)
	assert.Equal(t, "uploads/abc/input.pdf", loc.PDFKey)
	assert.Equal(t, "uploads/abc/meta.txt", loc.MetaKey)
	require.NotNil(t, loc.PDFURL)
	assert.Equal(t, "https://intake-bucket.s3.example/signed", *loc.PDFURL)

	// File first, metadata second, both private with the right content types.
	require.Len(t, put.inputs, 2)
	assert.Equal(t, "uploads/abc/input.pdf", *put.inputs[0].Key)
	assert.Equal(t, "application/pdf", *put.inputs[0].ContentType)
	assert.Equal(t, types.ObjectCannedACLPrivate, put.inputs[0].ACL)
	assert.Equal(t, "%PDF-1.4", put.bodies[0])
	assert.Equal(t, "uploads/abc/meta.txt", *put.inputs[1].Key)
	assert.Equal(t, "text/plain; charset=utf-8", *put.inputs[1].ContentType)
	assert.Equal(t, types.ObjectCannedACLPrivate, put.inputs[1].ACL)
	assert.Equal(t, string(meta), put.bodies[1])

	assert.Equal(t, []string{"uploads/abc/input.pdf"}, presign.keys)
}

func TestS3StorePersistPresignFailureIsNonFatal(t *testing.T) {
	put := &fakePut{}
	presign := &fakePresign{err: errors.New("signing credentials expired")}
	store := newTestS3Store(put, presign)

	loc, err := store.Persist(context.Background(), "abc", ".pdf", strings.NewReader("x"), []byte("m"))
	require.NoError(t, err, "a failed presign must not fail an upload that succeeded")

	assert.Nil(t, loc.PDFURL)
	assert.Equal(t, "uploads/abc/input.pdf", loc.PDFKey)
	assert.Equal(t, "uploads/abc/meta.txt", loc.MetaKey)
	assert.Len(t, put.inputs, 2, "both artifacts still uploaded")
}

func TestS3StorePersistFileUploadFailure(t *testing.T) {
	put := &fakePut{failKey: "uploads/abc/input.pdf"}
	presign := &fakePresign{url: "unused"}
	store := newTestS3Store(put, presign)

	loc, err := store.Persist(context.Background(), "abc", ".pdf", strings.NewReader("x"), []byte("m"))
	assert.Error(t, err)
	assert.Nil(t, loc)
	assert.Len(t, put.inputs, 1, "metadata upload must not be attempted")
	assert.Empty(t, presign.keys)
}

func TestS3StorePersistMetaUploadFailure(t *testing.T) {
	put := &fakePut{failKey: "uploads/abc/meta.txt"}
	presign := &fakePresign{url: "unused"}
	store := newTestS3Store(put, presign)

	loc, err := store.Persist(context.Background(), "abc", ".pdf", strings.NewReader("x"), []byte("m"))
	assert.Error(t, err)
	assert.Nil(t, loc)
	assert.Contains(t, err.Error(), "uploads/abc/meta.txt")
	assert.Empty(t, presign.keys, "no download link for a failed record")
}
