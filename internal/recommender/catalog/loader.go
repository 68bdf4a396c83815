package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	cerrors "github.com/JeduthunTheCreator/Cloud-Based-Game-Recommender-System/internal/common/errors"
)

// 데이터셋 파일 이름
const (
	GamesFileName      = "games.csv"
	GenresFileName     = "genres.csv"
	PublishersFileName = "publishers.csv"
)

// LoadDir 는 데이터셋 디렉터리에서 카탈로그 스냅샷을 구축한다.
// 파일 누락/형식 오류는 DataIntegrityError로 보고되며 기동 시 치명적으로 처리된다.
func LoadDir(dir string) (*Snapshot, error) {
	games, err := openDatasetFile(dir, GamesFileName)
	if err != nil {
		return nil, err
	}
	defer games.Close()

	genres, err := openDatasetFile(dir, GenresFileName)
	if err != nil {
		return nil, err
	}
	defer genres.Close()

	publishers, err := openDatasetFile(dir, PublishersFileName)
	if err != nil {
		return nil, err
	}
	defer publishers.Close()

	return Load(games, genres, publishers)
}

// Load 는 CSV 행 스트림 3개(게임/장르/퍼블리셔)로 카탈로그 스냅샷을 구축한다.
// 퍼블리셔는 id 기준 첫 행만 유지하고, 게임 ID는 유일해야 한다.
func Load(gameRows, genreRows, publisherRows io.Reader) (*Snapshot, error) {
	imageByGame, err := parsePublishers(publisherRows)
	if err != nil {
		return nil, err
	}

	genresByGame, genreNames, err := parseGenres(genreRows)
	if err != nil {
		return nil, err
	}

	games, latestID, err := parseGames(gameRows, imageByGame, genresByGame)
	if err != nil {
		return nil, err
	}

	genreIndex := buildGenreIndex(games)

	return &Snapshot{
		games:      games,
		genreIndex: genreIndex,
		genreNames: genreNames,
		latestID:   latestID,
	}, nil
}

func openDatasetFile(dir string, name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, cerrors.DataIntegrityError{Source: name, Reason: fmt.Sprintf("open failed: %v", err)}
	}
	return f, nil
}

func parseGames(
	r io.Reader,
	imageByGame map[string]string,
	genresByGame map[string][]string,
) (map[string]Game, int64, error) {
	rows, header, err := readCSV(r, GamesFileName)
	if err != nil {
		return nil, 0, err
	}

	idCol, err := requireColumn(header, GamesFileName, "id")
	if err != nil {
		return nil, 0, err
	}
	nameCol, err := requireColumn(header, GamesFileName, "name")
	if err != nil {
		return nil, 0, err
	}
	ratingCol, err := requireColumn(header, GamesFileName, "rating")
	if err != nil {
		return nil, 0, err
	}

	games := make(map[string]Game, len(rows))
	var latestID int64
	for i, row := range rows {
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			return nil, 0, cerrors.DataIntegrityError{
				Source: GamesFileName,
				Reason: fmt.Sprintf("row %d: empty game id", i+2),
			}
		}
		if _, exists := games[id]; exists {
			return nil, 0, cerrors.DataIntegrityError{
				Source: GamesFileName,
				Reason: fmt.Sprintf("duplicate game id %q", id),
			}
		}

		rating, err := strconv.ParseFloat(strings.TrimSpace(row[ratingCol]), 64)
		if err != nil {
			return nil, 0, cerrors.DataIntegrityError{
				Source: GamesFileName,
				Reason: fmt.Sprintf("row %d: malformed rating %q", i+2, row[ratingCol]),
			}
		}

		if numeric, parseErr := strconv.ParseInt(id, 10, 64); parseErr == nil && numeric > latestID {
			latestID = numeric
		}

		games[id] = Game{
			ID:       id,
			Name:     strings.TrimSpace(row[nameCol]),
			ImageURL: imageByGame[id],
			Genres:   genresByGame[id],
			Rating:   rating,
		}
	}

	return games, latestID, nil
}

func parseGenres(r io.Reader) (map[string][]string, []string, error) {
	rows, header, err := readCSV(r, GenresFileName)
	if err != nil {
		return nil, nil, err
	}

	idCol, err := requireColumn(header, GenresFileName, "id")
	if err != nil {
		return nil, nil, err
	}
	nameCol, err := requireColumn(header, GenresFileName, "name")
	if err != nil {
		return nil, nil, err
	}

	byGame := make(map[string][]string)
	seenPerGame := make(map[string]map[string]struct{})
	distinct := make(map[string]struct{})

	for _, row := range rows {
		gameID := strings.TrimSpace(row[idCol])
		name := strings.TrimSpace(row[nameCol])
		if gameID == "" || name == "" {
			continue
		}

		distinct[name] = struct{}{}

		seen := seenPerGame[gameID]
		if seen == nil {
			seen = make(map[string]struct{})
			seenPerGame[gameID] = seen
		}
		normalized := NormalizeGenre(name)
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		byGame[gameID] = append(byGame[gameID], name)
	}

	names := make([]string, 0, len(distinct))
	for name := range distinct {
		names = append(names, name)
	}
	sort.Strings(names)

	return byGame, names, nil
}

func parsePublishers(r io.Reader) (map[string]string, error) {
	rows, header, err := readCSV(r, PublishersFileName)
	if err != nil {
		return nil, err
	}

	idCol, err := requireColumn(header, PublishersFileName, "id")
	if err != nil {
		return nil, err
	}
	imageCol, err := requireColumn(header, PublishersFileName, "image_background")
	if err != nil {
		return nil, err
	}

	// 중복 id는 첫 행만 유지
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			continue
		}
		if _, exists := out[id]; exists {
			continue
		}
		out[id] = strings.TrimSpace(row[imageCol])
	}
	return out, nil
}

func buildGenreIndex(games map[string]Game) map[string][]string {
	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return CompareGameIDs(ids[i], ids[j]) < 0 })

	index := make(map[string][]string)
	for _, id := range ids {
		for _, genre := range games[id].Genres {
			key := NormalizeGenre(genre)
			index[key] = append(index[key], id)
		}
	}
	return index
}

func readCSV(r io.Reader, source string) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, cerrors.DataIntegrityError{Source: source, Reason: fmt.Sprintf("csv parse failed: %v", err)}
	}
	if len(records) == 0 {
		return nil, nil, cerrors.DataIntegrityError{Source: source, Reason: "empty file"}
	}

	header := make(map[string]int, len(records[0]))
	for idx, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = idx
	}

	rows := make([][]string, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) < len(records[0]) {
			return nil, nil, cerrors.DataIntegrityError{
				Source: source,
				Reason: fmt.Sprintf("row %d: expected %d columns, got %d", i+2, len(records[0]), len(row)),
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func requireColumn(header map[string]int, source string, name string) (int, error) {
	idx, ok := header[name]
	if !ok {
		return 0, cerrors.DataIntegrityError{Source: source, Reason: fmt.Sprintf("missing required column %q", name)}
	}
	return idx, nil
}
