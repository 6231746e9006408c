// Package render serialises digest documents to their canonical markdown
// layout and parses that layout back into documents.
//
// The layout is a wire format: an H1 title, an italic subtitle, a bold
// reading-time line, level-2 sections in document order, emoji-prefixed
// finding lines with blockquoted supporting quotes, and a terminal
// References section. Concatenated documents are joined with the literal
// separator token from the domain package.
package render
