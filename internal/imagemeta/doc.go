// Package imagemeta reads and writes content safety tags stored inside
// image files.
//
// PNG files carry the tag as three tEXt chunks (one per field); every other
// chunk, including unrelated text chunks, is kept byte for byte. JPEG files
// carry it as a single string in the EXIF UserComment field of the APP1
// segment: a fixed prefix followed by a JSON object. Other formats are not
// supported and report [ErrUnsupportedFormat].
package imagemeta
