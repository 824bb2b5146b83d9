package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/samber/lo"
)

type S3Options struct {
	Endpoint        string
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

// S3 stores objects in a bucket under an optional key prefix.
type S3 struct {
	Client *s3.Client
	Bucket string
	Prefix string
}

func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	const op = "NewS3"

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(lo.Ternary(opts.Region == "", "auto", opts.Region)),
	}
	if opts.Endpoint != "" {
		loadOpts = append(loadOpts, awsconfig.WithBaseEndpoint(opts.Endpoint))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("[%s] load AWS config: %w", op, err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.Endpoint != ""
	})
	return &S3{Client: client, Bucket: opts.Bucket, Prefix: opts.Prefix}, nil
}

func (s *S3) Key(name string) string {
	return s.Prefix + name
}

func (s *S3) Save(ctx context.Context, name string, r io.Reader) error {
	const op = "S3.Save"

	// uploads are capped well below memory concerns; a seekable body lets the
	// SDK sign the payload
	body, err := io.ReadAll(withContext(ctx, r))
	if err != nil {
		return fmt.Errorf("[%s] read body: %w", op, err)
	}

	_, err = s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(s.Key(name)),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(ContentType(name)),
		IfNoneMatch:   aws.String("*"),
	})
	if err != nil {
		return fmt.Errorf("[%s] put object %s: %w", op, s.Key(name), err)
	}
	return nil
}

func (s *S3) Remove(ctx context.Context, name string) error {
	const op = "S3.Remove"
	_, err := s.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key(name)),
	})
	if err != nil {
		return fmt.Errorf("[%s] delete object %s: %w", op, s.Key(name), err)
	}
	return nil
}
