package uploader

import "io"

// FakeImageStore keeps tests off the network: it applies the same type gate
// as the real store and mints deterministic fake URLs.
type FakeImageStore struct{}

func (*FakeImageStore) Store(fileName string, body io.Reader) (string, error) {
	if !IsAllowedImageName(fileName) {
		return "", ErrNotAnImage
	}
	return "https://fake-image-store.local/" + fileName, nil
}
