package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

var gmshTypes = map[int]CellType{
	15: Point1,
	1:  Line2,
	2:  Tri3,
	3:  Quad4,
	4:  Tet4,
	5:  Hex8,
	6:  Wedge6,
	7:  Pyramid5,
}

// ReadGmsh22File reads an ASCII Gmsh MSH file, format version 2.2
func ReadGmsh22File(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadGmsh22(file)
}

// ReadGmsh22 reads nodes and first order elements of an ASCII Gmsh 2.2 file
func ReadGmsh22(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	msh := NewMesh()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat22(scanner); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := readNodes22(scanner, msh); err != nil {
				return nil, err
			}

		case "$Elements":
			if err := readElements22(scanner, msh); err != nil {
				return nil, err
			}

		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				// Skip sections we don't use
				endMarker := "$End" + line[1:]
				for scanner.Scan() {
					if strings.TrimSpace(scanner.Text()) == endMarker {
						break
					}
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	return msh, nil
}

func readMeshFormat22(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported gmsh format version %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary gmsh files are not supported")
	}
	return skipTo(scanner, "$EndMeshFormat")
}

func readNodes22(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}
	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid node count: %v", err)
	}
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading nodes")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}
		var (
			xyz [3]float64
		)
		nodeID, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("invalid node id %q: %v", parts[0], err)
		}
		for j := 0; j < 3; j++ {
			if xyz[j], err = strconv.ParseFloat(parts[j+1], 64); err != nil {
				return fmt.Errorf("invalid coordinate for node %d: %v", nodeID, err)
			}
		}
		msh.AddNode(nodeID, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	}
	return skipTo(scanner, "$EndNodes")
}

func readElements22(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}
	numElements, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid element count: %v", err)
	}
	for i := 0; i < numElements; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading elements")
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid element line: %s", scanner.Text())
		}
		fields := make([]int, len(parts))
		for j, p := range parts {
			if fields[j], err = strconv.Atoi(p); err != nil {
				return fmt.Errorf("invalid element line %q: %v", scanner.Text(), err)
			}
		}
		ct, ok := gmshTypes[fields[1]]
		if !ok {
			// higher order elements are ignored
			continue
		}
		numTags := fields[2]
		if len(fields) != 3+numTags+ct.NumNodes() {
			return fmt.Errorf("element %d: expected %d nodes for %s", fields[0], ct.NumNodes(), ct)
		}
		c := Cell{
			ID:    fields[0],
			Type:  ct,
			Nodes: append([]int{}, fields[3+numTags:]...),
		}
		if numTags > 0 {
			c.Tag = fields[3]
		}
		msh.AddCell(c)
	}
	return skipTo(scanner, "$EndElements")
}

func skipTo(scanner *bufio.Scanner, marker string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == marker {
			return nil
		}
	}
	return fmt.Errorf("missing %s", marker)
}
