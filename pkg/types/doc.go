// Package types provides shared type definitions for the DocView server
// and its client-side consumers.
//
// EntryInfo describes a stored document without its content:
//
//	info := types.EntryInfo{
//	    ID:         "raw",
//	    Kind:       types.KindRaw,
//	    Length:     25000,
//	    ChunkSize:  10000,
//	    ChunkCount: 3,
//	}
//
// ChunkResponse is the unit of transfer between the chunk fetch service and
// the progressive loader:
//
//	resp := types.ChunkResponse{
//	    Content:     chunkText,
//	    HasMore:     true,
//	    TotalLength: 25000,
//	    NextIndex:   1,
//	}
//
// # Errors
//
// The package defines the sentinel errors every layer agrees on
// (ErrNotFound, ErrOutOfRange, ErrInvalidArgument, ErrTooLarge) plus
// TransformError, which carries a transform's own failure message through
// to the user:
//
//	if errors.Is(err, types.ErrNotFound) {
//	    // entry was cleared or never stored
//	}
//
//	var terr *types.TransformError
//	if errors.As(err, &terr) {
//	    fmt.Println(terr.Name, terr.Err) // e.g. "json", parse position detail
//	}
package types
