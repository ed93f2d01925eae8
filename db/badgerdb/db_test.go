package badgerdb

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerdb "github.com/celer-network/go-ledger/db"
)

func openTestDB(t *testing.T) (*DB, func()) {
	dir, err := ioutil.TempDir("", "badgerdb")
	require.NoError(t, err)
	database, err := NewDB(dir)
	require.NoError(t, err)
	return database, func() {
		assert.NoError(t, database.Close())
		os.RemoveAll(dir)
	}
}

func TestIteratorClose(t *testing.T) {
	database, cleanup := openTestDB(t)
	defer cleanup()

	ns := []byte("t")
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, database.Set(ns, []byte(k), []byte(k)))
	}

	start, end := ledgerdb.NamespaceRange(ns)
	iter := database.Iterator(start, end)
	require.True(t, iter.Valid())
	key, err := iter.Key()
	require.NoError(t, err)
	assert.Equal(t, ledgerdb.PrependNamespace(ns, []byte("a")), key)

	// stopping early releases the read transaction
	iter.Close()
	assert.False(t, iter.Valid())
	assert.Equal(t, errInvalidIterator, iter.Next())
	iter.Close()

	// an exhausted iterator has already released, Close stays safe
	iter = database.Iterator(start, end)
	for iter.Valid() {
		require.NoError(t, iter.Next())
	}
	iter.Close()
}

func TestTransactionAndBulk(t *testing.T) {
	database, cleanup := openTestDB(t)
	defer cleanup()

	ns := []byte("t")
	tx := database.NewTx()
	require.NoError(t, tx.Set(ns, []byte("k"), []byte("v")))
	require.NoError(t, tx.Commit())

	bulk := database.NewBulk()
	require.NoError(t, bulk.Delete(ns, []byte("k")))
	require.NoError(t, bulk.Set(ns, []byte("n"), nil))
	require.NoError(t, bulk.Flush())

	exists, err := database.Exist(ns, []byte("k"))
	require.NoError(t, err)
	assert.False(t, exists)
	value, found, err := database.Get(ns, []byte("n"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, value)
}
