package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignTTL = 15 * time.Minute

type AWSServiceProvider interface {
	PresignUpload(ctx context.Context, key string) (string, error)
	PresignRead(ctx context.Context, key string) (string, error)
}

// AWSService presigns garment image URLs against a Cloudflare R2 bucket.
type AWSService struct {
	bucket          string
	S3PresignClient *s3.PresignClient
}

func NewAWSService(ctx context.Context, accountID, accessKeyID, accessKeySecret, bucket string) (*AWSService, error) {
	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
		}, nil
	})
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &AWSService{
		bucket:          bucket,
		S3PresignClient: s3.NewPresignClient(s3.NewFromConfig(cfg)),
	}, nil
}

func (a *AWSService) PresignUpload(ctx context.Context, key string) (string, error) {
	request, err := a.S3PresignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("presign upload %s: %w", key, err)
	}
	return request.URL, nil
}

func (a *AWSService) PresignRead(ctx context.Context, key string) (string, error) {
	request, err := a.S3PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", fmt.Errorf("presign read %s: %w", key, err)
	}
	return request.URL, nil
}
