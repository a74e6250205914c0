package assets

import (
	"context"
	"fmt"
	"strings"

	"craftfolio/internal/common"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// usageMaxPages bounds the bucket walk in UsageStats.
const usageMaxPages = 200

type minioStore struct {
	core    *minio.Core
	bucket  string
	baseURL string
}

// NewMinioStore connects to a MinIO/S3 endpoint and serves asset listings
// out of a single bucket. Folder paths map to object key prefixes; public
// URLs are endpoint/bucket/key.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (AssetStore, error) {
	core, err := minio.NewCore(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return &minioStore{
		core:    core,
		bucket:  bucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket),
	}, nil
}

func folderPrefix(path string) string {
	return strings.TrimSuffix(path, "/") + "/"
}

func (s *minioStore) FolderExists(ctx context.Context, path string) (*FolderCheck, error) {
	res, err := s.core.ListObjectsV2(s.bucket, folderPrefix(path), "", "", "/", 1000)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", common.ErrUpstream, path, err)
	}

	check := &FolderCheck{}
	for _, prefix := range res.CommonPrefixes {
		check.SubFolders = append(check.SubFolders, subfolderName(prefix.Prefix, path))
	}
	check.Exists = len(res.Contents) > 0 || len(check.SubFolders) > 0
	return check, nil
}

func (s *minioStore) ListResourcesByFolder(ctx context.Context, path, cursor string, maxResults int) (*ResourcePage, error) {
	res, err := s.core.ListObjectsV2(s.bucket, folderPrefix(path), "", cursor, "/", maxResults)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", common.ErrUpstream, path, err)
	}

	page := &ResourcePage{}
	for _, obj := range res.Contents {
		// Directory placeholder objects are not assets.
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		page.URLs = append(page.URLs, s.baseURL+"/"+obj.Key)
	}
	if res.IsTruncated {
		page.NextCursor = res.NextContinuationToken
	}
	return page, nil
}

func (s *minioStore) ListSubfolders(ctx context.Context, path string) ([]string, error) {
	res, err := s.core.ListObjectsV2(s.bucket, folderPrefix(path), "", "", "/", 1000)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", common.ErrUpstream, path, err)
	}

	var names []string
	for _, prefix := range res.CommonPrefixes {
		names = append(names, subfolderName(prefix.Prefix, path))
	}
	return names, nil
}

func (s *minioStore) UsageStats(ctx context.Context) (*Usage, error) {
	usage := &Usage{}
	cursor := ""
	for page := 0; page < usageMaxPages; page++ {
		res, err := s.core.ListObjectsV2(s.bucket, "", "", cursor, "", 1000)
		if err != nil {
			return nil, fmt.Errorf("%w: usage walk: %v", common.ErrUpstream, err)
		}
		for _, obj := range res.Contents {
			usage.Objects++
			usage.Bytes += obj.Size
		}
		if !res.IsTruncated {
			return usage, nil
		}
		cursor = res.NextContinuationToken
	}
	return nil, fmt.Errorf("%w: usage walk exceeded %d pages", common.ErrUpstream, usageMaxPages)
}

// subfolderName strips the parent prefix and trailing slash from a common
// prefix, leaving the immediate child folder name.
func subfolderName(prefix, parent string) string {
	name := strings.TrimPrefix(prefix, folderPrefix(parent))
	return strings.TrimSuffix(name, "/")
}
