package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/jobportal/backend/config"
	"github.com/jobportal/backend/logger"
)

const gcsScheme = "gs://"

// URLSigner produces signed GET URLs for bucket objects
type URLSigner interface {
	SignedURL(bucket, object string, opts *storage.SignedURLOptions) (string, error)
}

type clientSigner struct {
	client *storage.Client
}

func (s clientSigner) SignedURL(bucket, object string, opts *storage.SignedURLOptions) (string, error) {
	return s.client.Bucket(bucket).SignedURL(object, opts)
}

// ImageSigner resolves gs:// job image references to V4 signed URLs.
// Any other reference is returned unchanged.
type ImageSigner struct {
	client *storage.Client
	signer URLSigner
	bucket string
	ttl    time.Duration
}

// NewImageSigner creates a Cloud Storage backed image resolver
func NewImageSigner(ctx context.Context, cfg *config.Config) (*ImageSigner, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud Storage client: %w", err)
	}

	s := newImageSigner(clientSigner{client: client}, cfg.JobImageBucket, time.Duration(cfg.SignedURLTTLMinutes)*time.Minute)
	s.client = client
	return s, nil
}

func newImageSigner(signer URLSigner, bucket string, ttl time.Duration) *ImageSigner {
	return &ImageSigner{signer: signer, bucket: bucket, ttl: ttl}
}

// Close closes the Cloud Storage client
func (s *ImageSigner) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// ResolveImage implements ImageResolver. Objects outside the configured
// bucket and signing failures fall back to the raw reference.
func (s *ImageSigner) ResolveImage(_ context.Context, ref string) string {
	bucket, object, ok := parseGCSRef(ref)
	if !ok || (s.bucket != "" && bucket != s.bucket) {
		return ref
	}

	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: time.Now().Add(s.ttl),
	}

	url, err := s.signer.SignedURL(bucket, object, opts)
	if err != nil {
		log := logger.Component("ImageSigner")
		log.Warn().Err(err).Str("ref", ref).Msg("failed to generate signed URL")
		return ref
	}
	return url
}

// parseGCSRef splits gs://bucket/object
func parseGCSRef(ref string) (bucket, object string, ok bool) {
	if !strings.HasPrefix(ref, gcsScheme) {
		return "", "", false
	}
	bucket, object, found := strings.Cut(strings.TrimPrefix(ref, gcsScheme), "/")
	if !found || bucket == "" || object == "" {
		return "", "", false
	}
	return bucket, object, true
}
