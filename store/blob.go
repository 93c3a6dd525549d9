package store

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/fxamacker/cbor/v2"

	"github.com/bankaixyz/mmr"
)

// Blob is a Store backed by Azure Blob Storage, one object per StoreKey,
// CBOR-encoded. It is meant for accumulators whose authoritative record is
// an object-storage container rather than a database: the same shape the
// teacher's log segments use, minus the fixed-size massif sharding.
//
// Blob storage has no native cross-object transaction, so SetMany is not
// atomic on its own: a crash partway through a batch can leave some of its
// node hashes written and its counters not, or vice versa. Callers that
// need the stronger guarantee should pair Blob with checkpoint.Sign,
// writing a signed checkpoint only once a batch's blobs are confirmed, and
// treating anything past the last checkpoint as provisional.
type Blob struct {
	client    *azblob.Client
	container string
}

// NewBlob wraps an already-authenticated azblob.Client, storing everything
// under containerName.
func NewBlob(client *azblob.Client, containerName string) *Blob {
	return &Blob{client: client, container: containerName}
}

func blobName(key mmr.StoreKey) string {
	return fmt.Sprintf("%s/%d/%020d", key.MmrID.String(), key.Kind, key.Index)
}

func (b *Blob) Get(ctx context.Context, key mmr.StoreKey) (mmr.StoreValue, bool, error) {
	resp, err := b.client.DownloadStream(ctx, b.container, blobName(key), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return mmr.StoreValue{}, false, nil
		}
		return mmr.StoreValue{}, false, fmt.Errorf("store: downloading %s: %w", blobName(key), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return mmr.StoreValue{}, false, fmt.Errorf("store: reading %s: %w", blobName(key), err)
	}

	var value mmr.StoreValue
	if err := cbor.Unmarshal(body, &value); err != nil {
		return mmr.StoreValue{}, false, fmt.Errorf("store: decoding %s: %w", blobName(key), err)
	}
	return value, true, nil
}

func (b *Blob) GetMany(ctx context.Context, keys []mmr.StoreKey) ([]mmr.StoreValue, []bool, error) {
	values := make([]mmr.StoreValue, len(keys))
	found := make([]bool, len(keys))
	for i, key := range keys {
		v, ok, err := b.Get(ctx, key)
		if err != nil {
			return nil, nil, err
		}
		values[i], found[i] = v, ok
	}
	return values, found, nil
}

func (b *Blob) Set(ctx context.Context, key mmr.StoreKey, value mmr.StoreValue) error {
	body, err := cbor.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encoding %s: %w", blobName(key), err)
	}
	if _, err := b.client.UploadBuffer(ctx, b.container, blobName(key), body, nil); err != nil {
		return fmt.Errorf("store: uploading %s: %w", blobName(key), err)
	}
	return nil
}

func (b *Blob) SetMany(ctx context.Context, entries []mmr.KeyValue) error {
	for _, entry := range entries {
		if err := b.Set(ctx, entry.Key, entry.Value); err != nil {
			return err
		}
	}
	return nil
}
