package tilemap

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"pacman-fsm/internal/geom"
)

type Tile int

const (
	TileEmpty Tile = iota
	TileWall
	TilePellet
	TilePower
	TileDoor
	TileHouse
)

var (
	ErrEmptyMaze    = errors.New("maze has no rows")
	ErrRaggedMaze   = errors.New("maze rows differ in width")
	ErrMissingSpawn = errors.New("maze has no player spawn")
	ErrMissingHouse = errors.New("maze has no ghost house")
)

type Cell struct {
	X, Y int
}

// Markers are the cells the maze text tags with a letter instead of a tile.
type Markers struct {
	PlayerSpawn Cell
	BonusSpawn  *Cell
	House       []Cell
}

type TileMap struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	Markers  Markers
}

func NewDefaultMap(tileSize int) *TileMap {
	m, err := Parse(defaultMaze, tileSize)
	if err != nil {
		panic(fmt.Sprintf("tilemap: built-in maze: %v", err))
	}
	return m
}

// Parse builds a map from maze text. Unknown characters are empty floor.
func Parse(lines []string, tileSize int) (*TileMap, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyMaze
	}
	w := len(lines[0])
	m := &TileMap{Width: w, Height: len(lines), TileSize: tileSize}
	m.Tiles = make([][]Tile, len(lines))
	spawn := false
	for y, line := range lines {
		if len(line) != w {
			return nil, fmt.Errorf("row %d: %w", y, ErrRaggedMaze)
		}
		m.Tiles[y] = make([]Tile, w)
		for x := 0; x < w; x++ {
			switch line[x] {
			case '#':
				m.Tiles[y][x] = TileWall
			case '.':
				m.Tiles[y][x] = TilePellet
			case 'o':
				m.Tiles[y][x] = TilePower
			case '-':
				m.Tiles[y][x] = TileDoor
			case 'G':
				m.Tiles[y][x] = TileHouse
				m.Markers.House = append(m.Markers.House, Cell{x, y})
			case 'P':
				m.Markers.PlayerSpawn = Cell{x, y}
				spawn = true
			case 'B':
				m.Markers.BonusSpawn = &Cell{x, y}
			default:
				m.Tiles[y][x] = TileEmpty
			}
		}
	}
	if !spawn {
		return nil, ErrMissingSpawn
	}
	if len(m.Markers.House) == 0 {
		return nil, ErrMissingHouse
	}
	return m, nil
}

func (m *TileMap) inBounds(x, y int) bool {
	return y >= 0 && y < m.Height && x >= 0 && x < m.Width
}

func (m *TileMap) IsWall(x, y int) bool {
	if !m.inBounds(x, y) {
		return true
	}
	return m.Tiles[y][x] == TileWall
}

// IsWalkable reports whether a ghost may occupy the cell.
func (m *TileMap) IsWalkable(x, y int) bool { return !m.IsWall(x, y) }

// PlayerCanEnter is IsWalkable minus the ghost house.
func (m *TileMap) PlayerCanEnter(x, y int) bool {
	if m.IsWall(x, y) {
		return false
	}
	t := m.Tiles[y][x]
	return t != TileDoor && t != TileHouse
}

// EatPelletAt removes a pellet/power pellet at grid cell and returns (ate, power)
func (m *TileMap) EatPelletAt(x, y int) (bool, bool) {
	if !m.inBounds(x, y) {
		return false, false
	}
	if m.Tiles[y][x] == TilePellet {
		m.Tiles[y][x] = TileEmpty
		return true, false
	}
	if m.Tiles[y][x] == TilePower {
		m.Tiles[y][x] = TileEmpty
		return true, true
	}
	return false, false
}

// CountPellets counts normal and power pellets still on the board.
func (m *TileMap) CountPellets() int {
	n := 0
	for _, row := range m.Tiles {
		for _, t := range row {
			if t == TilePellet || t == TilePower {
				n++
			}
		}
	}
	return n
}

func (m *TileMap) CellCenter(x, y int) geom.Vec2 {
	ts := float64(m.TileSize)
	return geom.V(float64(x)*ts+ts/2, float64(y)*ts+ts/2)
}

// CellAt returns the cell containing a pixel position. It may be out of bounds.
func (m *TileMap) CellAt(p geom.Vec2) (int, int) {
	ts := float64(m.TileSize)
	return floorDiv(p.X, ts), floorDiv(p.Y, ts)
}

func floorDiv(v, size float64) int {
	c := int(v / size)
	if v < 0 && float64(c)*size != v {
		c--
	}
	return c
}

// HouseBounds is the pixel rectangle covering every ghost house cell.
func (m *TileMap) HouseBounds() geom.Bounds {
	if len(m.Markers.House) == 0 {
		return geom.Bounds{}
	}
	minX, minY := m.Markers.House[0].X, m.Markers.House[0].Y
	maxX, maxY := minX, minY
	for _, c := range m.Markers.House[1:] {
		minX, maxX = min(minX, c.X), max(maxX, c.X)
		minY, maxY = min(minY, c.Y), max(maxY, c.Y)
	}
	ts := float64(m.TileSize)
	lo := geom.V(float64(minX)*ts, float64(minY)*ts)
	hi := geom.V(float64(maxX+1)*ts, float64(maxY+1)*ts)
	return geom.Bounds{Center: lo.Add(hi).Scale(0.5), Size: hi.Sub(lo)}
}

// BonusSpawn returns the pixel centre of the bonus marker, if the maze has one.
func (m *TileMap) BonusSpawn() *geom.Vec2 {
	if m.Markers.BonusSpawn == nil {
		return nil
	}
	p := m.CellCenter(m.Markers.BonusSpawn.X, m.Markers.BonusSpawn.Y)
	return &p
}

func (m *TileMap) PixelWidth() int  { return m.Width * m.TileSize }
func (m *TileMap) PixelHeight() int { return m.Height * m.TileSize }

func (m *TileMap) Draw(dst *ebiten.Image) {
	blue := color.RGBA{R: 33, G: 33, B: 255, A: 255}
	pink := color.RGBA{R: 255, G: 184, B: 222, A: 255}
	pelletColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ts := float32(m.TileSize)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			px := float32(x) * ts
			py := float32(y) * ts
			cx := px + ts/2
			cy := py + ts/2

			switch m.Tiles[y][x] {
			case TileWall:
				vector.DrawFilledRect(dst, px, py, ts, ts, blue, false)
			case TileDoor:
				vector.DrawFilledRect(dst, px, cy-ts/8, ts, ts/4, pink, false)
			case TilePellet:
				vector.DrawFilledCircle(dst, cx, cy, ts/8, pelletColor, true)
			case TilePower:
				vector.DrawFilledCircle(dst, cx, cy, ts/4, pelletColor, true)
			}
		}
	}
}
