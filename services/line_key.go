package services

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// BuildLineKey derives the stable identity of a cart line so repeated
// adds of the same selection collapse onto one line.
//
//	variant resolved:        "{productID}_{variantID}"
//	free-form attributes:    "{productID}_default_{md5(size|color|material)}"
//	plain product:           "{productID}_simple"
//
// The hash runs over a fixed field order, so the key is independent of
// the order attributes arrived in.
func BuildLineKey(productID uint, variantID *uint, size, color, material string) string {
	if variantID != nil {
		return fmt.Sprintf("%d_%d", productID, *variantID)
	}
	size = strings.TrimSpace(size)
	color = strings.TrimSpace(color)
	material = strings.TrimSpace(material)
	if size != "" || color != "" || material != "" {
		sum := md5.Sum([]byte(size + "|" + color + "|" + material))
		return fmt.Sprintf("%d_default_%s", productID, hex.EncodeToString(sum[:]))
	}
	return fmt.Sprintf("%d_simple", productID)
}
