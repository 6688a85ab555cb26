package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/mcncl/jsonnorm/internal/formatter"
	"github.com/mcncl/jsonnorm/internal/normalizer"
	"github.com/mcncl/jsonnorm/internal/parser"
	"github.com/stretchr/testify/require"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(rng *rand.Rand, depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"count":      rng.Intn(100),
			"enabled":    rng.Intn(2) == 1,
			"missing":    nil,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(rng, depth-1, width)
	}
	return result
}

// generateObjectArray creates an array of objects in random order
func generateObjectArray(rng *rand.Rand, count int) []map[string]interface{} {
	items := make([]map[string]interface{}, count)
	for i := range items {
		items[i] = map[string]interface{}{
			"group": rng.Intn(10),
			"name":  fmt.Sprintf("item-%06d", rng.Intn(count*10)),
			"value": rng.Float64(),
		}
	}
	return items
}

// runPipeline parses, normalizes and formats data the same way the CLI does
func runPipeline(b *testing.B, data []byte, sortArraysBy []string) {
	doc, err := parser.ParseString(string(data))
	require.NoError(b, err)

	n := normalizer.New(normalizer.Options{SortKeys: true, SortArraysBy: sortArraysBy})
	normalized, err := n.Normalize(doc.Root)
	require.NoError(b, err)

	f := formatter.NewFormatterWithOptions(formatter.Options{Indent: formatter.DefaultIndent, RemoveNulls: true})
	_, err = f.Format(normalized)
	require.NoError(b, err)
}

// BenchmarkDeepNesting benchmarks key sorting over deeply nested objects
func BenchmarkDeepNesting(b *testing.B) {
	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},   // Moderate nesting
		{"Depth5Width2", 5, 2},   // Deep nesting
		{"Depth2Width10", 2, 10}, // Wide but shallow
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			rng := rand.New(rand.NewSource(1))
			data, err := json.Marshal(generateNestedJSON(rng, depth.depth, depth.width))
			require.NoError(b, err)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				runPipeline(b, data, nil)
			}
		})
	}
}

// BenchmarkArraySorting benchmarks sorting arrays of objects by a tuple of attributes
func BenchmarkArraySorting(b *testing.B) {
	sizes := []int{100, 1000, 10000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dItems", size), func(b *testing.B) {
			rng := rand.New(rand.NewSource(2))
			data, err := json.Marshal(generateObjectArray(rng, size))
			require.NoError(b, err)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				runPipeline(b, data, []string{"group", "name"})
			}
		})
	}
}

// BenchmarkLargeJSON benchmarks the CLI end to end with large JSON files
func BenchmarkLargeJSON(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Items", 100},
		{"1000Items", 1000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
			generateLargeJSON(b, jsonFile, size.itemCount)
			outputFile := filepath.Join(tempDir, fmt.Sprintf("%s_output.json", size.name))

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../../main.go", "-s", "-a", "priority,id", "-n", "-f", jsonFile, "-o", outputFile)
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))

				_, err = os.Stat(outputFile)
				require.NoError(b, err, "Output file was not created")

				if err := os.Remove(outputFile); err != nil {
					fmt.Fprintf(os.Stderr, "Error removing file: %v\n", err)
				}
			}
		})
	}
}
