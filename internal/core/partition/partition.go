package partition

import "hash/fnv"

// Count is the fixed number of logical partitions for per-subject rows.
// Changing it would orphan every stored daily total.
const Count = 256

// For returns the partition ID of a subject. Same subjectRef, same partition.
func For(subjectRef string) int {
	h := fnv.New32a()
	h.Write([]byte(subjectRef))
	return int(h.Sum32() % Count)
}
