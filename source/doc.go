// Package source reads location history exports into record sequences.
//
// Two readers are provided:
//   - Document reads the complete JSON document into memory and indexes it
//     with gjson. It understands the Takeout layout ({"locations": [...]})
//     and the older Google Latitude layout ({"data": {"items": [...]}}).
//   - Stream walks the Takeout layout token by token with encoding/json and
//     decodes one record at a time, so arbitrarily large files can be
//     converted in constant memory.
//
// Both return records through Next, which yields nil, nil once the input
// is exhausted.
package source
