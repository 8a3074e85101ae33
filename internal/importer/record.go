// Package importer bulk-loads products from a newline-delimited JSON feed,
// optionally gzip-compressed, through the catalog service.
package importer

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/klauspost/pgzip"

	"github.com/xenking/shop-catalog/internal/domain/catalog"
)

// maxLine bounds a single feed line.
const maxLine = 1 << 20

// Record is one product of the feed.
type Record struct {
	CategoryID  int64
	Name        string
	Description string
	Quantity    int
	Price       float64
	Discount    float64
}

// Key identifies the product within the catalog: names are unique per
// category.
func (r Record) Key() string {
	return strconv.FormatInt(r.CategoryID, 10) + "\x00" + r.Name
}

// DTO converts r into the service input.
func (r Record) DTO() catalog.ProductDTO {
	return catalog.ProductDTO{
		ProductName: r.Name,
		Description: r.Description,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Discount:    r.Discount,
	}
}

// DecodeRecord parses one feed line:
//
//	{"categoryId":1,"productName":"Phone","description":"","quantity":3,"price":99.5,"discount":10}
//
// Unknown fields are ignored.
func DecodeRecord(line []byte) (Record, error) {
	var r Record
	err := jx.DecodeBytes(line).Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "categoryId":
			r.CategoryID, err = d.Int64()
		case "productName":
			r.Name, err = d.Str()
		case "description":
			if d.Next() == jx.Null {
				return d.Null()
			}
			r.Description, err = d.Str()
		case "quantity":
			r.Quantity, err = d.Int()
		case "price":
			r.Price, err = d.Float64()
		case "discount":
			r.Discount, err = d.Float64()
		default:
			return d.Skip()
		}
		return errors.Wrap(err, key)
	})
	if err != nil {
		return Record{}, err
	}

	switch {
	case r.CategoryID <= 0:
		return Record{}, errors.New("categoryId is required")
	case strings.TrimSpace(r.Name) == "":
		return Record{}, errors.New("productName is required")
	}
	return r, nil
}

// Stream calls fn for every non-blank line of the feed at path. Files ending
// in .gz are decompressed with pgzip. Line numbers start at 1.
func Stream(ctx context.Context, path string, fn func(lineNo int, rec Record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64<<10), maxLine)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		rec, err := DecodeRecord(line)
		if err != nil {
			return errors.Wrapf(err, "%s:%d", path, lineNo)
		}
		if err := fn(lineNo, rec); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}
	return nil
}
