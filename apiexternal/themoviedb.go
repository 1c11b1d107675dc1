package apiexternal

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

type TheMovieDBSearch struct {
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
	Page         int `json:"page"`
	Results      []struct {
		OriginalTitle    string  `json:"original_title"`
		VoteAverage      float32 `json:"vote_average"`
		Popularity       float32 `json:"popularity"`
		VoteCount        int     `json:"vote_count"`
		ReleaseDate      string  `json:"release_date"`
		Title            string  `json:"title"`
		Adult            bool    `json:"adult"`
		Overview         string  `json:"overview"`
		ID               int     `json:"id"`
		OriginalLanguage string  `json:"original_language"`
	} `json:"results"`
}
type TheMovieDBSearchTV struct {
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
	Page         int `json:"page"`
	Results      []struct {
		ID               int      `json:"id"`
		OriginalLanguage string   `json:"original_language"`
		FirstAirDate     string   `json:"first_air_date"`
		Name             string   `json:"name"`
		OriginalName     string   `json:"original_name"`
		VoteAverage      float32  `json:"vote_average"`
		VoteCount        int      `json:"vote_count"`
		Overview         string   `json:"overview"`
		OriginCountry    []string `json:"origin_country"`
		Popularity       float32  `json:"popularity"`
	} `json:"results"`
}

type TmdbClient struct {
	ApiKey string
	Client *RLHTTPClient
}

var TmdbApi TmdbClient

// ApiBaseURL is a variable so tests can point the client at a local server.
var ApiBaseURL = "https://api.themoviedb.org/3"

func NewTmdbClient(apikey string, seconds int, calls int) {
	if seconds == 0 {
		seconds = 1
	}
	if calls == 0 {
		calls = 1
	}
	rl := rate.NewLimiter(rate.Every(time.Duration(seconds)*time.Second), calls) // x requests every y seconds
	TmdbApi = TmdbClient{ApiKey: apikey, Client: NewClient(rl)}
}

func (t TmdbClient) SearchMovie(name string) (TheMovieDBSearch, error) {
	req, _ := http.NewRequest("GET", ApiBaseURL+"/search/movie?api_key="+t.ApiKey+"&query="+url.QueryEscape(name), nil)

	var result TheMovieDBSearch
	err := t.Client.DoJson(req, &result)
	if err != nil {
		return TheMovieDBSearch{}, err
	}
	return result, nil
}

func (t TmdbClient) SearchMovieYear(name string, year int) (TheMovieDBSearch, error) {
	urlv := ApiBaseURL + "/search/movie?api_key=" + t.ApiKey + "&query=" + url.QueryEscape(name)
	if year != 0 {
		urlv += "&year=" + strconv.Itoa(year)
	}
	req, _ := http.NewRequest("GET", urlv, nil)

	var result TheMovieDBSearch
	err := t.Client.DoJson(req, &result)
	if err != nil {
		return TheMovieDBSearch{}, err
	}
	return result, nil
}

func (t TmdbClient) SearchTV(name string) (TheMovieDBSearchTV, error) {
	req, _ := http.NewRequest("GET", ApiBaseURL+"/search/tv?api_key="+t.ApiKey+"&query="+url.QueryEscape(name), nil)

	var result TheMovieDBSearchTV
	err := t.Client.DoJson(req, &result)
	if err != nil {
		return TheMovieDBSearchTV{}, err
	}
	return result, nil
}
