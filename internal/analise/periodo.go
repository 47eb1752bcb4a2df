package analise

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gestaovarejo/api-backoffice/internal/erros"
	"gorm.io/gorm"
)

const formatoData = "2006-01-02"

// PeriodoPadrao é usado quando a requisição não informa período.
const PeriodoPadrao = 30

var periodosValidos = map[string]bool{"7": true, "30": true, "90": true, "180": true, "365": true}

// Periodo é o intervalo [Inicio, Fim) das consultas. Todos desliga o filtro
// de data.
type Periodo struct {
	Inicio time.Time
	Fim    time.Time
	Todos  bool
}

// LerPeriodo interpreta ?period=7|30|90|180|365|all ou ?startDate=&endDate=
// (AAAA-MM-DD, inclusivos). Períodos em dias terminam no fim do dia de agora.
func LerPeriodo(r *http.Request, agora time.Time) (Periodo, error) {
	q := r.URL.Query()
	inicio, fim := q.Get("startDate"), q.Get("endDate")
	if inicio != "" || fim != "" {
		return intervalo(inicio, fim, agora.Location())
	}

	p := q.Get("period")
	switch {
	case p == "":
		return ultimosDias(PeriodoPadrao, agora), nil
	case p == "all":
		return Periodo{Todos: true}, nil
	case periodosValidos[p]:
		dias, _ := strconv.Atoi(p)
		return ultimosDias(dias, agora), nil
	}
	return Periodo{}, erros.Validacao("period deve ser 7, 30, 90, 180, 365 ou all")
}

func intervalo(inicio, fim string, loc *time.Location) (Periodo, error) {
	if inicio == "" || fim == "" {
		return Periodo{}, erros.Validacao("startDate e endDate devem ser informados juntos")
	}
	ini, err := time.ParseInLocation(formatoData, inicio, loc)
	if err != nil {
		return Periodo{}, erros.Validacao("startDate inválida, use AAAA-MM-DD")
	}
	f, err := time.ParseInLocation(formatoData, fim, loc)
	if err != nil {
		return Periodo{}, erros.Validacao("endDate inválida, use AAAA-MM-DD")
	}
	if f.Before(ini) {
		return Periodo{}, erros.Validacao("endDate não pode ser anterior a startDate")
	}
	return Periodo{Inicio: ini, Fim: f.AddDate(0, 0, 1)}, nil
}

func ultimosDias(dias int, agora time.Time) Periodo {
	fim := inicioDoDia(agora).AddDate(0, 0, 1)
	return Periodo{Inicio: fim.AddDate(0, 0, -dias), Fim: fim}
}

func inicioDoDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Anterior é o período de mesma duração imediatamente antes de p.
func (p Periodo) Anterior() (Periodo, bool) {
	if p.Todos {
		return Periodo{}, false
	}
	return Periodo{Inicio: p.Inicio.Add(-p.Fim.Sub(p.Inicio)), Fim: p.Inicio}, true
}

func (p Periodo) filtrar(db *gorm.DB, coluna string) *gorm.DB {
	if p.Todos {
		return db
	}
	return db.Where(coluna+" >= ? AND "+coluna+" < ?", p.Inicio, p.Fim)
}

func (p Periodo) resposta() PeriodoResponse {
	if p.Todos {
		return PeriodoResponse{All: true}
	}
	return PeriodoResponse{
		StartDate: p.Inicio.Format(formatoData),
		EndDate:   p.Fim.AddDate(0, 0, -1).Format(formatoData),
	}
}
