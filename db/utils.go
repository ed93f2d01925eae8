package db

var (
	NamespaceSeedState  = []byte("ss")
	NamespaceEpochNonce = []byte("en")
	NamespaceAccount    = []byte("acc")
	Separator           = []byte("|")
)

// PrependNamespace returns namespace|key in a fresh slice.
func PrependNamespace(namespace []byte, key []byte) []byte {
	if namespace == nil {
		return key
	}
	out := make([]byte, 0, len(namespace)+len(Separator)+len(key))
	out = append(out, namespace...)
	out = append(out, Separator...)
	return append(out, key...)
}

// NamespaceRange returns the iterator bounds covering every key in namespace.
func NamespaceRange(namespace []byte) (start []byte, end []byte) {
	start = PrependNamespace(namespace, nil)
	end = append([]byte{}, start...)
	end[len(end)-1]++
	return start, end
}

// StripNamespace removes the namespace|prefix from a key returned by an iterator.
func StripNamespace(namespace []byte, key []byte) []byte {
	return key[len(namespace)+len(Separator):]
}

func ConvNilToBytes(byteArray []byte) []byte {
	if byteArray == nil {
		return []byte{}
	}
	return byteArray
}
