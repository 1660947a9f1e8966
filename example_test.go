package mertio_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/mertio"
	"github.com/hupe1980/mertio/blobstore"
	"github.com/hupe1980/mertio/stats"
)

func ExampleScoreArray_Load() {
	input := "SCORES_TXT_BEGIN_ x 2 3 BLEU\n1 2 3\n4 5 6\nSCORES_TXT_END_\n"

	a := mertio.NewScoreArray()
	if err := a.Load(strings.NewReader(input)); err != nil {
		panic(err)
	}

	fmt.Println(a.GroupIndex(), a.NumberOfScores(), a.MetricType(), a.Size())
	// Output: x 3 BLEU 2
}

func ExampleScoreArray_Save() {
	a := mertio.NewScoreArray()
	a.SetGroupIndex("0")
	a.SetNumberOfScores(2)
	a.Add(stats.FromValues(1, 0.5))
	a.Add(stats.FromValues(2, 1.5))

	var buf bytes.Buffer
	if err := a.Save(&buf, "BLEU", false); err != nil {
		panic(err)
	}

	fmt.Print(buf.String())
	// Output:
	// SCORES_TXT_BEGIN_0 0 2 2 BLEU
	// 1 0.5
	// 2 1.5
	// SCORES_TXT_END_0
}

func ExampleScoreData_SaveBlob() {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	d := mertio.NewScoreData("BLEU", mertio.WithCompression(mertio.CompressionZstd))
	for i := 0; i < 3; i++ {
		a := mertio.NewScoreArray()
		a.SetGroupIndex(fmt.Sprint(i))
		a.SetNumberOfScores(1)
		a.Add(stats.FromValues(stats.Value(i)))
		d.Add(a)
	}
	if err := d.SaveBlob(ctx, store, "iter1", true); err != nil {
		panic(err)
	}

	names, _ := store.List(ctx, "iter1/")
	for _, name := range names {
		fmt.Println(name)
	}

	loaded := mertio.NewScoreData("", mertio.WithCompression(mertio.CompressionZstd))
	if err := loaded.LoadBlob(ctx, store, "iter1"); err != nil {
		panic(err)
	}
	fmt.Println(loaded.Size(), loaded.Missing(5))
	// Output:
	// iter1/0.scores.zst
	// iter1/1.scores.zst
	// iter1/2.scores.zst
	// iter1/catalog.json
	// 3 [3 4]
}
