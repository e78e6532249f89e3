package uploader

import (
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/devworkshq/devworks/utils"
	"github.com/google/uuid"
)

// S3ImageStore uploads post images to an S3 bucket and hands back publicly
// reachable URLs under urlPrefix.
type S3ImageStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
}

func NewS3ImageStore(bucket, region, urlPrefix string) (*S3ImageStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(urlPrefix, "/") {
		urlPrefix = urlPrefix + "/"
	}
	return &S3ImageStore{
		bucket:    bucket,
		urlPrefix: urlPrefix,
		uploader:  s3manager.NewUploader(sess),
	}, nil
}

// Store validates the type gate, uploads under a collision-free key and
// returns the public URL. The key hashes the original name plus a fresh uuid
// so repeated uploads of the same file never clobber each other.
func (s *S3ImageStore) Store(fileName string, body io.Reader) (string, error) {
	if !IsAllowedImageName(fileName) {
		return "", ErrNotAnImage
	}
	key := utils.TextToMd5Hash(fileName+uuid.New().String()) + strings.ToLower(path.Ext(fileName))
	_, err := s.uploader.Upload(&s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return "", err
	}
	return s.urlPrefix + key, nil
}
