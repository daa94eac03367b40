package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"

	"github.com/ZacxDev/workout-clipper/pkg/types"
	"github.com/ZacxDev/workout-clipper/pkg/util"
)

// S3 stores artifacts in an AWS S3 (or S3-compatible) bucket.
type S3 struct {
	bucket   string
	region   string
	client   *s3.S3
	uploader *s3manager.Uploader
}

// NewS3 creates S3 storage. Missing bucket or credentials fail here, before
// any I/O is attempted.
func NewS3(cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, &ConfigError{Backend: types.StorageBackendS3, Missing: "bucket name"}
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, &ConfigError{Backend: types.StorageBackendS3, Missing: "access key and secret key"}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, errors.Wrap(err, "error creating S3 session")
	}

	return &S3{
		bucket:   cfg.Bucket,
		region:   region,
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
	}, nil
}

func (s *S3) Save(r io.Reader, filename, folder string) (string, error) {
	safeFilename := util.SanitizeFilename(filename)
	key := makeKey(folder, safeFilename)

	_, err := s.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", errors.Wrapf(err, "error uploading %s", key)
	}

	return key, nil
}

func (s *S3) SaveFile(path, filename, folder string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "error opening source file %s", path)
	}
	defer src.Close()

	return s.Save(src, filename, folder)
}

func (s *S3) Delete(key string) (bool, error) {
	exists, err := s.Exists(key)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	_, err = s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return false, errors.Wrapf(err, "error deleting %s", key)
	}
	return true, nil
}

func (s *S3) Exists(key string) (bool, error) {
	_, err := s.client.HeadObject(&s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case "NotFound", s3.ErrCodeNoSuchKey, s3.ErrCodeNoSuchBucket:
				return false, nil
			}
		}
		return false, errors.Wrapf(err, "error checking %s", key)
	}
	return true, nil
}

// URL returns the virtual-hosted-style bucket URL for a key.
func (s *S3) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// LocalPath always reports false: S3 objects have no local file.
func (s *S3) LocalPath(key string) (string, bool) {
	return "", false
}
