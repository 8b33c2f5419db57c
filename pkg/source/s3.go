package source

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the slice of the S3 client this package uses. *s3.Client
// satisfies it.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source fetches a document object from S3.
//
// When Client is nil the first Load builds one from the ambient AWS
// configuration (environment, shared config, instance role).
type S3Source struct {
	Bucket string
	Key    string
	Client S3API

	once sync.Once
	err  error
}

func (s *S3Source) Load(ctx context.Context) (io.ReadCloser, error) {
	s.once.Do(func() {
		if s.Client != nil {
			return
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			s.err = fmt.Errorf("source: aws config: %w", err)
			return
		}
		s.Client = s3.NewFromConfig(cfg)
	})
	if s.err != nil {
		return nil, s.err
	}

	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("source: s3 get %s/%s: %w", s.Bucket, s.Key, err)
	}
	return out.Body, nil
}

func (s *S3Source) Name() string {
	return "s3://" + s.Bucket + "/" + s.Key
}
