package jsonserver

import (
	"encoding/json"
	"strconv"
)

// SampleData returns a small jsonplaceholder-like database with posts,
// comments and users.
func SampleData() map[string][]Item {
	n := func(i int) json.Number { return json.Number(strconv.Itoa(i)) }
	return map[string][]Item{
		"users": {
			{"id": n(1), "name": "Leanne Graham", "username": "Bret", "email": "Sincere@april.biz"},
			{"id": n(2), "name": "Ervin Howell", "username": "Antonette", "email": "Shanna@melissa.tv"},
		},
		"posts": {
			{"id": n(1), "userId": n(1), "title": "sunt aut facere repellat", "body": "quia et suscipit"},
			{"id": n(2), "userId": n(1), "title": "qui est esse", "body": "est rerum tempore vitae"},
			{"id": n(3), "userId": n(2), "title": "ea molestias quasi", "body": "et iusto sed quo iure"},
		},
		"comments": {
			{"id": n(1), "postId": n(1), "name": "id labore ex et quam laborum", "email": "Eliseo@gardner.biz", "body": "laudantium enim quasi"},
			{"id": n(2), "postId": n(1), "name": "quo vero reiciendis velit", "email": "Jayne_Kuhic@sydney.com", "body": "est natus enim nihil"},
			{"id": n(3), "postId": n(2), "name": "odio adipisci rerum aut animi", "email": "Nikita@garfield.biz", "body": "quia molestiae reprehenderit"},
		},
	}
}
